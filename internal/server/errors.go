package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/careerforge/internal/autosave"
	"github.com/jonathan/careerforge/internal/editor"
	"github.com/jonathan/careerforge/internal/generate"
	"github.com/jonathan/careerforge/internal/schemas"
	"github.com/jonathan/careerforge/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *editor.ItemNotFoundError
		bulletErr     *editor.BulletIndexError
		scoreErr      *editor.InvalidScoreTypeError
		schemaErr     *schemas.ValidationError
		loadErr       *schemas.SchemaLoadError
		quotaErr      *store.QuotaExceededError
		kindErr       *generate.InvalidKindError
		payloadErr    *generate.ValidationError
		upstreamErr   *generate.UpstreamError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &bulletErr),
		errors.As(err, &scoreErr), errors.As(err, &schemaErr),
		errors.As(err, &loadErr), errors.As(err, &kindErr),
		errors.As(err, &payloadErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &quotaErr):
		return http.StatusInsufficientStorage
	case errors.Is(err, autosave.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstreamErr):
		return upstreamErr.Status
	default:
		return http.StatusInternalServerError
	}
}
