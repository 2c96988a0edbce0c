package fetch

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// TempFilePrefix starts the name of every staged page.
const TempFilePrefix = "checkhtml-"

// TempFile is a fetched page staged on disk. Callers must Remove it when done.
type TempFile struct {
	Path string
}

// ToTempFile writes body verbatim to a new uniquely named file in dir
// (os.TempDir() when dir is empty).
func ToTempFile(dir string, body []byte) (*TempFile, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, TempFilePrefix+uuid.NewString()+".html")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // path is built from a random name
	if err != nil {
		return nil, errors.Wrap(err, "create temporary file")
	}
	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "write temporary file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, errors.Wrap(err, "close temporary file")
	}

	return &TempFile{Path: path}, nil
}

// Remove deletes the staged file. Removing an already deleted file is not an error.
func (t *TempFile) Remove() error {
	if err := os.Remove(t.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
