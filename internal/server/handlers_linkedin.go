package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/generate"
)

// LinkedInRequest is the body of POST /api/linkedin
type LinkedInRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// LinkedInResponse is the success body of POST /api/linkedin
type LinkedInResponse struct {
	Content string `json:"content"`
}

// Messages returned by the generation endpoint
const (
	msgNotConfigured   = "API key not configured. Please add GEMINI_API_KEY to your .env file"
	msgInvalidType     = "Invalid request type"
	msgUpstreamFailure = "Failed to generate content. Please check your API key."
	msgInternal        = "An error occurred while processing your request"
)

// handleLinkedIn forwards a headline, summary or experience request to the generator
func (s *Server) handleLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req LinkedInRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	content, err := s.app.Generator.Generate(r.Context(), req.Type, req.Data)
	if err != nil {
		s.generationError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, LinkedInResponse{Content: content})
}

func (s *Server) generationError(w http.ResponseWriter, err error) {
	var (
		kindErr     *generate.InvalidKindError
		payloadErr  *generate.ValidationError
		upstreamErr *generate.UpstreamError
	)

	switch {
	case errors.Is(err, generate.ErrNotConfigured):
		s.errorResponse(w, http.StatusInternalServerError, msgNotConfigured)
	case errors.As(err, &kindErr):
		s.errorResponse(w, http.StatusBadRequest, msgInvalidType)
	case errors.As(err, &payloadErr):
		s.errorResponse(w, http.StatusBadRequest, payloadErr.Error())
	case errors.As(err, &upstreamErr):
		s.errorResponse(w, upstreamErr.Status, msgUpstreamFailure)
	default:
		s.logger.Error("content generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, msgInternal)
	}
}
