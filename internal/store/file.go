package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// File stores each key as a JSON file inside a directory
type File struct {
	dir string
}

// NewFile creates the directory if needed and returns a file-backed store
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file path used for key
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Get implements Store
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &Error{Op: "get", Key: key, Cause: err}
	}
	return data, nil
}

// Set implements Store. The value is written to a temp file and renamed
// into place so readers never observe a partial document.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		_ = os.Remove(tmpName)
		return &Error{Op: "set", Key: key, Cause: err}
	}
	return nil
}

// Delete implements Store
func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Op: "delete", Key: key, Cause: err}
	}
	return nil
}
