// Package trafilatura extracts the main article text from a page using
// go-trafilatura, dropping navigation, sidebars and footers.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/biomark"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements biomark.Extractor at compile time.
var _ biomark.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title followed by the text of the main content.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", biomark.Errorf(biomark.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	fragments := []string{result.Metadata.Title}
	if result.ContentNode != nil {
		collectText(result.ContentNode, &fragments)
	}

	text := biomark.JoinText(fragments)
	if text == "" {
		return "", biomark.Errorf(biomark.EINVALID, "no article content found")
	}
	return text, nil
}

func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		*out = append(*out, n.Data)
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}
