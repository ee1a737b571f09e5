// Package store provides the key/value backends that hold the persisted resume document.
package store

import (
	"context"
	"errors"
	"fmt"
)

// DefaultKey is the fixed key the resume document is persisted under
const DefaultKey = "careerforge_resume_data"

// ErrNotFound is returned by Get when the key holds no value
var ErrNotFound = errors.New("store: key not found")

// Store is a durable string-keyed byte store. Values are opaque to the store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// QuotaExceededError is returned when a write would exceed the store's capacity
type QuotaExceededError struct {
	Key   string
	Size  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("store quota exceeded writing %q: %d bytes exceeds limit of %d", e.Key, e.Size, e.Limit)
}

// Error wraps a backend failure with the operation and key involved
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
