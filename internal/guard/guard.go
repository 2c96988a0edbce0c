// Package guard provides the existence checks applied to user-supplied input paths.
package guard

import (
	"fmt"
	"os"
)

// MissingFileError is returned when an input path does not name a readable file.
type MissingFileError struct {
	Path  string
	Cause error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s does not exist. Exiting.", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return e.Cause
}

// FileExists returns path unchanged when it names an existing regular file.
// Directories are reported as missing since they cannot be loaded.
func FileExists(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &MissingFileError{Path: path, Cause: err}
	}
	if info.IsDir() {
		return "", &MissingFileError{Path: path}
	}
	return path, nil
}
