package mock

import (
	"context"

	"github.com/fwojciec/biomark"
)

var _ biomark.WorkDir = (*WorkDir)(nil)

// WorkDir is a mock implementation of biomark.WorkDir.
type WorkDir struct {
	SaveRawFn  func(ctx context.Context, doc *biomark.RawDocument) error
	SaveTextFn func(ctx context.Context, doc *biomark.TextDocument) error
	CleanupFn  func() error
}

func (w *WorkDir) SaveRaw(ctx context.Context, doc *biomark.RawDocument) error {
	return w.SaveRawFn(ctx, doc)
}

func (w *WorkDir) SaveText(ctx context.Context, doc *biomark.TextDocument) error {
	return w.SaveTextFn(ctx, doc)
}

func (w *WorkDir) Cleanup() error {
	return w.CleanupFn()
}
