package mock

import "github.com/fwojciec/biomark"

var _ biomark.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of biomark.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
