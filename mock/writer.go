package mock

import (
	"context"

	"github.com/fwojciec/biomark"
)

var _ biomark.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of biomark.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, rec *biomark.Record) error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, rec *biomark.Record) error {
	return w.WriteRecordFn(ctx, rec)
}
