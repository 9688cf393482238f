package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/mock"
	bioslog "github.com/fwojciec/biomark/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordStore_InsertRecord(t *testing.T) {
	t.Parallel()

	t.Run("logs name and generated id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordStore{
			InsertRecordFn: func(ctx context.Context, rec *biomark.Record) error {
				rec.ID = "rec-1"
				return nil
			},
		}

		s := bioslog.NewLoggingRecordStore(inner, logger)
		err := s.InsertRecord(context.Background(), &biomark.Record{Name: "article_1"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "insert record")
		assert.Contains(t, output, "name=article_1")
		assert.Contains(t, output, "id=rec-1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordStore{
			InsertRecordFn: func(ctx context.Context, rec *biomark.Record) error {
				return errors.New("connection refused")
			},
		}

		s := bioslog.NewLoggingRecordStore(inner, logger)
		err := s.InsertRecord(context.Background(), &biomark.Record{Name: "article_1"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"connection refused\"")
	})
}
