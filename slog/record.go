package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/biomark"
)

// Ensure LoggingRecordStore implements biomark.RecordStore.
var _ biomark.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging.
type LoggingRecordStore struct {
	next   biomark.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next biomark.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// InsertRecord delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) InsertRecord(ctx context.Context, rec *biomark.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("insert record",
			"name", rec.Name,
			"id", rec.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InsertRecord(ctx, rec)
}
