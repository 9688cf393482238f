// Package fs provides file-based storage for article artifacts and
// extraction records.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/biomark"
)

// checkName rejects names that would escape the target directory.
func checkName(name string) error {
	if name == "" {
		return biomark.Errorf(biomark.EINVALID, "file name required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return biomark.Errorf(biomark.EINVALID, "invalid file name %q: path traversal not allowed", name)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
