package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerforge/internal/autosave"
	"github.com/jonathan/careerforge/internal/editor"
	"github.com/jonathan/careerforge/internal/generate"
	"github.com/jonathan/careerforge/internal/schemas"
	"github.com/jonathan/careerforge/internal/store"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "index", Message: "must be an integer"}
	assert.Equal(t, "validation error: index - must be an integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"item not found", &editor.ItemNotFoundError{List: "projects", ID: "x"}, http.StatusNotFound},
		{"wrapped item not found", fmt.Errorf("update: %w", &editor.ItemNotFoundError{List: "education", ID: "y"}), http.StatusNotFound},
		{"bullet index", &editor.BulletIndexError{ProjectID: "p", Index: 3, Len: 1}, http.StatusBadRequest},
		{"score type", &editor.InvalidScoreTypeError{Value: "GPA"}, http.StatusBadRequest},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"schema load", &schemas.SchemaLoadError{Path: "resume.schema.json"}, http.StatusBadRequest},
		{"quota", &store.QuotaExceededError{Key: "k", Size: 2, Limit: 1}, http.StatusInsufficientStorage},
		{"closed", autosave.ErrClosed, http.StatusServiceUnavailable},
		{"invalid kind", &generate.InvalidKindError{Kind: "readme"}, http.StatusBadRequest},
		{"payload", &generate.ValidationError{Kind: generate.KindHeadline}, http.StatusBadRequest},
		{"upstream", &generate.UpstreamError{Status: http.StatusTooManyRequests}, http.StatusTooManyRequests},
		{"not configured", generate.ErrNotConfigured, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
