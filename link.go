package biomark

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Link is a single source document to process.
type Link struct {
	URL string

	// Position is the 1-based index of the link in the input list.
	// It names the artifacts derived from the link (article_<Position>).
	Position int
}

// Name returns the base name used for every file derived from the link.
func (l Link) Name() string {
	return fmt.Sprintf("article_%d", l.Position)
}

// ReadLinks reads a newline-separated list of URLs.
// Blank lines and lines starting with "#" are skipped; positions count only
// the links that are kept.
func ReadLinks(r io.Reader) ([]Link, error) {
	var links []Link
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, Link{URL: line, Position: len(links) + 1})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return links, nil
}

// Batches splits links into consecutive slices of at most size links.
// A size below 1 is treated as 1.
func Batches(links []Link, size int) [][]Link {
	if size < 1 {
		size = 1
	}
	batches := make([][]Link, 0, (len(links)+size-1)/size)
	for i := 0; i < len(links); i += size {
		end := min(i+size, len(links))
		batches = append(batches, links[i:end])
	}
	return batches
}
