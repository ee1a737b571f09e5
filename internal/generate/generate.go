// Package generate turns LinkedIn content requests into prompts and sends
// them to the configured text generation client.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/careerforge/internal/llm"
	"github.com/jonathan/careerforge/internal/prompts"
	"github.com/jonathan/careerforge/internal/validation"
)

// Recorder receives generation outcomes, typically for metrics
type Recorder interface {
	ObserveGeneration(kind string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, error) {}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for request and safeguard logging
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// Generator builds prompts for each Kind and forwards them to an llm.Client
type Generator struct {
	client   llm.Client
	logger   *zap.Logger
	recorder Recorder
	validate *validator.Validate
}

// New creates a Generator. A nil client yields ErrNotConfigured on every request.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:   client,
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether a client is available
func (g *Generator) Configured() bool {
	return g.client != nil
}

// Prompt decodes data for kind, validates it and returns the filled prompt
func (g *Generator) Prompt(kind Kind, data json.RawMessage) (string, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", err
	}

	p := newPayload(kind)
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return "", &ValidationError{Kind: kind, Cause: errors.New("data is required")}
	}
	if err := json.Unmarshal(data, p); err != nil {
		return "", &ValidationError{Kind: kind, Cause: err}
	}
	if err := g.validate.Struct(p); err != nil {
		return "", validationError(kind, err)
	}

	fields := p.fields()
	for name, result := range validation.CheckFields(fields) {
		validation.LogInjectionWarning(g.logger, result, string(kind)+"."+name)
	}

	template, err := prompts.Get(prompts.LinkedInFile, string(kind))
	if err != nil {
		return "", fmt.Errorf("failed to load %s prompt: %w", kind, err)
	}
	return prompts.Format(template, fields), nil
}

// Generate produces content for a raw request type and payload. An answer
// without text yields an empty string.
func (g *Generator) Generate(ctx context.Context, rawKind string, data json.RawMessage) (content string, err error) {
	label := "invalid"
	defer func() { g.recorder.ObserveGeneration(label, err) }()

	kind, kindErr := ParseKind(rawKind)
	if kindErr == nil {
		label = string(kind)
	}

	if g.client == nil {
		return "", ErrNotConfigured
	}
	if kindErr != nil {
		return "", kindErr
	}

	prompt, err := g.Prompt(kind, data)
	if err != nil {
		return "", err
	}

	content, err = g.client.GenerateContent(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			return "", nil
		}
		g.logger.Error("content generation failed",
			zap.String("kind", string(kind)),
			zap.String("model", g.client.Model()),
			zap.Error(err),
		)
		if status := llm.StatusCode(err); status > 0 {
			return "", &UpstreamError{Status: status, Cause: err}
		}
		return "", fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	g.logger.Info("content generated",
		zap.String("kind", string(kind)),
		zap.Int("length", len(content)),
	)
	return content, nil
}

func validationError(kind Kind, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Kind: kind, Cause: err}
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, jsonName(fe.Field()))
	}
	return &ValidationError{Kind: kind, Fields: fields, Cause: err}
}

// jsonName lowercases the first letter so field names match the request body
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
