// Package goquery extracts visible text from article markup using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/biomark"
	"golang.org/x/net/html"
)

// hiddenSelector matches elements whose text is never rendered.
const hiddenSelector = "script, style, noscript, template"

// Ensure TextExtractor implements biomark.Extractor at compile time.
var _ biomark.Extractor = (*TextExtractor)(nil)

// TextExtractor returns every visible text node of a page joined by single
// spaces. Nothing is treated as boilerplate; titles, navigation and
// footers are kept.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract parses the markup and returns its visible text nodes, each
// trimmed, joined by single spaces. Empty markup yields empty text.
func (e *TextExtractor) Extract(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", biomark.Errorf(biomark.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(hiddenSelector).Remove()

	var fragments []string
	for _, n := range doc.Nodes {
		collectText(n, &fragments)
	}

	return biomark.JoinText(fragments), nil
}

// collectText appends the data of every text node below n in document order.
// Comments and doctypes are not text nodes and are skipped.
func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		*out = append(*out, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}
