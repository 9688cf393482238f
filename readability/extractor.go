// Package readability extracts the main article text from a page using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/biomark"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements biomark.Extractor at compile time.
var _ biomark.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title followed by its text content.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", biomark.Errorf(biomark.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	text := biomark.JoinText([]string{article.Title, article.TextContent})
	if text == "" {
		return "", biomark.Errorf(biomark.EINVALID, "no article content found")
	}
	return text, nil
}
