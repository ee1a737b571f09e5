package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir publishes artifacts as files inside a local directory
type Dir struct {
	root string
}

// NewDir creates root if needed
func NewDir(root string) (*Dir, error) {
	if root == "" {
		return nil, fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Publish implements Publisher. Existing files with the same name are replaced.
func (d *Dir) Publish(_ context.Context, name string, data []byte, contentType string) (*Object, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return nil, &PublishError{Name: name, Cause: fmt.Errorf("invalid file name")}
	}

	path := filepath.Join(d.root, base)
	tmp, err := os.CreateTemp(d.root, ".publish-*")
	if err != nil {
		return nil, &PublishError{Name: name, Cause: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, &PublishError{Name: name, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, &PublishError{Name: name, Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return nil, &PublishError{Name: name, Cause: err}
	}

	return &Object{
		Name:        base,
		Location:    path,
		Size:        int64(len(data)),
		ContentType: contentType,
	}, nil
}
