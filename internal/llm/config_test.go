package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.0-flash", config.Model)
	assert.InDelta(t, 0.7, config.Temperature, 1e-6)
	assert.Equal(t, int32(40), config.TopK)
	assert.InDelta(t, 0.95, config.TopP, 1e-6)
	assert.Equal(t, int32(1024), config.MaxOutputTokens)
}

func TestWithModel(t *testing.T) {
	original := DefaultConfig()
	modified := original.WithModel("custom-model")

	assert.Equal(t, "custom-model", modified.Model)
	assert.Equal(t, original.TopK, modified.TopK)
	// Original should be unchanged
	assert.Equal(t, DefaultModel, original.Model)
}

func TestWithModel_Empty(t *testing.T) {
	assert.Equal(t, DefaultModel, DefaultConfig().WithModel("").Model)
}
