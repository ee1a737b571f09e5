package generate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotConfigured is returned when no generation client is available
var ErrNotConfigured = errors.New("generation API key not configured")

// InvalidKindError is returned for a type discriminator outside the known kinds
type InvalidKindError struct {
	Kind string
}

func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid request type %q", e.Kind)
}

// ValidationError is returned when a payload is malformed or misses required fields
type ValidationError struct {
	Kind   Kind
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("invalid %s payload: missing %s", e.Kind, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("invalid %s payload: %v", e.Kind, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// UpstreamError is returned when the provider rejects a request with an HTTP status
type UpstreamError struct {
	Status int
	Cause  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream generation failed with status %d: %v", e.Status, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
