// Package storage publishes rendered artifacts to a local directory or an
// S3 compatible bucket.
package storage

import (
	"context"
	"fmt"
)

// Object describes a published artifact
type Object struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Publisher stores an artifact under name and reports where it landed
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte, contentType string) (*Object, error)
}

// PublishError wraps a failed upload with the artifact name
type PublishError struct {
	Name  string
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %s: %v", e.Name, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}
