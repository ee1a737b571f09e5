package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/schemas"
	"github.com/jonathan/careerforge/internal/types"
)

// StatusResponse represents the response for /resume/status
type StatusResponse struct {
	Status   string `json:"status"`
	HasSaved bool   `json:"hasSaved"`
	Key      string `json:"key"`
}

// handleGetResume returns the current document
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.app.Editor.Snapshot())
}

// handleReplaceResume replaces the whole document after schema validation
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := schemas.ValidateResume(body); err != nil {
		s.errorFromErr(w, err)
		return
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	s.app.Editor.Replace(&doc)
	s.jsonResponse(w, http.StatusOK, s.app.Editor.Snapshot())
}

// handleClearResume deletes the persisted document and resets to the sample
func (s *Server) handleClearResume(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Reset(r.Context()); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.app.Editor.Snapshot())
}

// handleStatus reports the save status and whether anything is persisted
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	saved, err := s.app.Saver.HasSaved(r.Context())
	if err != nil {
		s.logger.Warn("failed to check saved resume", zap.Error(err))
	}
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		Status:   string(s.app.Saver.Status()),
		HasSaved: saved,
		Key:      s.app.Saver.Key(),
	})
}

// handleSave writes the current document immediately
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Saver.SaveNow(r.Context(), s.app.Editor.Snapshot()); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.handleStatus(w, r)
}

// handleSetPersonalInfo replaces the header block
func (s *Server) handleSetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	var info types.PersonalInfo
	if err := s.decodeJSON(w, r, &info); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.app.Editor.SetPersonalInfo(info)
	s.jsonResponse(w, http.StatusOK, s.app.Editor.Snapshot().PersonalInfo)
}

// handleSetSkills replaces the skill categories
func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	var skills types.TechnicalSkills
	if err := s.decodeJSON(w, r, &skills); err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.app.Editor.SetTechnicalSkills(skills)
	s.jsonResponse(w, http.StatusOK, s.app.Editor.Snapshot().TechnicalSkills)
}
