package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/fwojciec/biomark"
)

// RecordExt is the extension of record files.
const RecordExt = ".json"

// Ensure RecordWriter implements biomark.RecordWriter at compile time.
var _ biomark.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes records as pretty-printed JSON files to a directory.
type RecordWriter struct {
	baseDir string
}

// NewRecordWriter creates a new RecordWriter that writes to the given base directory.
func NewRecordWriter(baseDir string) *RecordWriter {
	return &RecordWriter{baseDir: baseDir}
}

// Path returns the file a record with the given name is written to.
func (w *RecordWriter) Path(name string) string {
	return filepath.Join(w.baseDir, name+RecordExt)
}

// WriteRecord writes the record's fields to <baseDir>/<name>.json.
// An existing file with the same name is replaced.
func (w *RecordWriter) WriteRecord(ctx context.Context, rec *biomark.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := checkName(rec.Name); err != nil {
		return err
	}

	data, err := FormatRecord(rec.Fields)
	if err != nil {
		return err
	}

	return writeFileAtomic(w.Path(rec.Name), data)
}

// FormatRecord encodes fields as JSON indented by four spaces.
// Non-ASCII characters are written literally and HTML characters are not
// escaped.
func FormatRecord(fields map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(fields); err != nil {
		return nil, biomark.Errorf(biomark.EINVALID, "encode record: %v", err)
	}
	return buf.Bytes(), nil
}
