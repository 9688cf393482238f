package mock

import (
	"context"

	"github.com/fwojciec/biomark"
)

var _ biomark.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of biomark.RecordStore.
type RecordStore struct {
	InsertRecordFn func(ctx context.Context, rec *biomark.Record) error
}

func (s *RecordStore) InsertRecord(ctx context.Context, rec *biomark.Record) error {
	return s.InsertRecordFn(ctx, rec)
}

var _ biomark.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of biomark.RecordService.
type RecordService struct {
	InsertRecordFn   func(ctx context.Context, rec *biomark.Record) error
	FindRecordByIDFn func(ctx context.Context, id string) (*biomark.Record, error)
	FindRecordsFn    func(ctx context.Context, filter biomark.RecordFilter) ([]*biomark.Record, error)
}

func (s *RecordService) InsertRecord(ctx context.Context, rec *biomark.Record) error {
	return s.InsertRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*biomark.Record, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter biomark.RecordFilter) ([]*biomark.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
