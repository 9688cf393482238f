package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/biomark"
)

// Artifact extensions written to the working folder.
const (
	RawExt  = ".html"
	TextExt = ".txt"
)

// Ensure WorkDir implements biomark.WorkDir at compile time.
var _ biomark.WorkDir = (*WorkDir)(nil)

// WorkDir stores one batch's fetched markup and extracted text.
type WorkDir struct {
	dir string
}

// NewWorkDir creates a new WorkDir rooted at dir.
// The directory is created on first write.
func NewWorkDir(dir string) *WorkDir {
	return &WorkDir{dir: dir}
}

// Path returns the file path for a name and extension.
func (w *WorkDir) Path(name, ext string) string {
	return filepath.Join(w.dir, name+ext)
}

// SaveRaw writes the markup as <name>.html.
func (w *WorkDir) SaveRaw(ctx context.Context, doc *biomark.RawDocument) error {
	if err := checkName(doc.Name); err != nil {
		return err
	}
	return w.write(w.Path(doc.Name, RawExt), doc.HTML)
}

// SaveText writes the text as <name>.txt.
func (w *WorkDir) SaveText(ctx context.Context, doc *biomark.TextDocument) error {
	if err := checkName(doc.Name); err != nil {
		return err
	}
	return w.write(w.Path(doc.Name, TextExt), doc.Text)
}

func (w *WorkDir) write(path, content string) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// Cleanup removes every .html and .txt file in the folder, including
// leftovers from earlier runs. Other files and subdirectories are kept.
// A missing folder is not an error. Every removal is attempted; failures
// are joined into the returned error.
func (w *WorkDir) Cleanup() error {
	entries, err := os.ReadDir(w.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case RawExt, TextExt:
			if err := os.Remove(filepath.Join(w.dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
