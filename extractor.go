package biomark

import "strings"

// Extractor converts markup into plain text.
type Extractor interface {
	// Extract returns the visible text of the markup as trimmed text
	// fragments joined by single spaces.
	Extract(html string) (string, error)
}

// JoinText trims each fragment, drops empty ones and joins the rest with
// single spaces. Whitespace inside a fragment is kept, so preformatted
// text survives.
func JoinText(fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}
