package vcs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrIsDirectory is returned by FileExists when path names a directory.
var ErrIsDirectory = errors.New("path is a directory")

// FileExists reports whether a non-directory file exists at path. A missing
// path is not an error.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}
	return true, nil
}
