package autosave

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by SaveNow after Close
var ErrClosed = errors.New("autosave: saver is closed")

// SerializationError is returned when the document cannot be encoded for storage
type SerializationError struct {
	Cause error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize resume document: %v", e.Cause)
}

func (e *SerializationError) Unwrap() error {
	return e.Cause
}
