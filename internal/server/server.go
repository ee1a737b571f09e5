// Package server provides the HTTP API for editing, exporting and generating resume content.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/bootstrap"
	"github.com/jonathan/careerforge/internal/server/ratelimit"
)

// maxBodyBytes caps request bodies; a resume document is far smaller
const maxBodyBytes = 1 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	app         *bootstrap.App
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit defaults to ratelimit.LoadConfig() when nil
	RateLimit *ratelimit.Config
}

// New creates a new server instance around an assembled app
func New(app *bootstrap.App, cfg Config) *Server {
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		app:         app,
		logger:      app.Logger.Named("http"),
		rateLimiter: ratelimit.NewLimiter(rlConfig),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", app.Metrics.Handler())

	// Whole document
	mux.HandleFunc("GET /resume", s.handleGetResume)
	mux.HandleFunc("PUT /resume", s.handleReplaceResume)
	mux.HandleFunc("DELETE /resume", s.handleClearResume)
	mux.HandleFunc("GET /resume/status", s.handleStatus)
	mux.HandleFunc("POST /resume/save", s.handleSave)

	// Singular sections
	mux.HandleFunc("PUT /resume/personal-info", s.handleSetPersonalInfo)
	mux.HandleFunc("PUT /resume/skills", s.handleSetSkills)

	// List sections
	mux.HandleFunc("POST /resume/education", s.handleAddEducation)
	mux.HandleFunc("PUT /resume/education/{id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /resume/education/{id}", s.handleRemoveEducation)
	mux.HandleFunc("POST /resume/projects", s.handleAddProject)
	mux.HandleFunc("PUT /resume/projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /resume/projects/{id}", s.handleRemoveProject)
	mux.HandleFunc("POST /resume/projects/{id}/bullets", s.handleAddBullet)
	mux.HandleFunc("PUT /resume/projects/{id}/bullets/{index}", s.handleUpdateBullet)
	mux.HandleFunc("DELETE /resume/projects/{id}/bullets/{index}", s.handleRemoveBullet)
	mux.HandleFunc("POST /resume/certifications", s.handleAddCertification)
	mux.HandleFunc("PUT /resume/certifications/{id}", s.handleUpdateCertification)
	mux.HandleFunc("DELETE /resume/certifications/{id}", s.handleRemoveCertification)
	mux.HandleFunc("POST /resume/achievements", s.handleAddAchievement)
	mux.HandleFunc("PUT /resume/achievements/{id}", s.handleUpdateAchievement)
	mux.HandleFunc("DELETE /resume/achievements/{id}", s.handleRemoveAchievement)

	// Artifacts
	mux.HandleFunc("GET /resume/export.tex", s.handleExportLaTeX)
	mux.HandleFunc("GET /resume/export.pdf", s.handleExportPDF)
	mux.HandleFunc("GET /resume/preview.pdf", s.handlePreviewPDF)
	mux.HandleFunc("POST /resume/export", s.handlePublish)

	// Content generation
	mux.HandleFunc("POST /api/linkedin", s.handleLinkedIn)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Metrics.Middleware(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // generation calls wait on the upstream API
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run listens until ctx is cancelled, then drains in-flight requests and
// flushes the pending document write.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if closeErr := s.app.Close(shutdownCtx); closeErr != nil {
		s.logger.Error("failed to close app", zap.Error(closeErr))
	}
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFromErr maps err onto a status and writes it. Server-side failures are
// logged and their details are not echoed to the client.
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON body into v, rejecting unknown fields
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
