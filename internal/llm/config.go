// Package llm wraps the generative text provider behind a small client interface.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Config holds the model and sampling settings sent with every request
type Config struct {
	Provider        Provider
	Model           string
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           DefaultModel,
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	}
}

// WithModel returns a copy of the config using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	next := *c
	if model != "" {
		next.Model = model
	}
	return &next
}
