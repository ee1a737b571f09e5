package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/export"
	"github.com/jonathan/careerforge/internal/rendering"
	"github.com/jonathan/careerforge/internal/storage"
)

// PublishResponse represents the response for POST /resume/export
type PublishResponse struct {
	Pages   int               `json:"pages"`
	Objects []*storage.Object `json:"objects"`
}

// handleExportLaTeX downloads the LaTeX source
func (s *Server) handleExportLaTeX(w http.ResponseWriter, _ *http.Request) {
	doc := s.app.Editor.Snapshot()

	start := time.Now()
	tex, err := rendering.RenderLaTeX(doc)
	s.app.Metrics.ObserveRender(rendering.ExtLaTeX, time.Since(start), err)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.artifactResponse(w, export.ContentTypeLaTeX+"; charset=utf-8",
		rendering.ArtifactName(doc.PersonalInfo.Name, rendering.ExtLaTeX), "attachment", []byte(tex))
}

// handleExportPDF downloads the PDF
func (s *Server) handleExportPDF(w http.ResponseWriter, _ *http.Request) {
	s.servePDF(w, "attachment")
}

// handlePreviewPDF serves the PDF for inline display
func (s *Server) handlePreviewPDF(w http.ResponseWriter, _ *http.Request) {
	s.servePDF(w, "inline")
}

func (s *Server) servePDF(w http.ResponseWriter, disposition string) {
	doc := s.app.Editor.Snapshot()

	start := time.Now()
	result, err := rendering.RenderPDF(doc)
	s.app.Metrics.ObserveRender(rendering.ExtPDF, time.Since(start), err)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	w.Header().Set("X-Page-Count", fmt.Sprintf("%d", result.Pages))
	s.artifactResponse(w, export.ContentTypePDF,
		rendering.ArtifactName(doc.PersonalInfo.Name, rendering.ExtPDF), disposition, result.Data)
}

// handlePublish renders both artifacts and hands them to the configured publisher
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	pub, err := s.app.Publisher(r.Context())
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	bundle, err := export.Build(r.Context(), s.app.Editor.Snapshot(), s.app.Metrics)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	objects, err := export.Publish(r.Context(), pub, bundle)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, PublishResponse{Pages: bundle.Pages, Objects: objects})
}

func (s *Server) artifactResponse(w http.ResponseWriter, contentType, name, disposition string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("failed to write artifact", zap.String("name", name), zap.Error(err))
	}
}
