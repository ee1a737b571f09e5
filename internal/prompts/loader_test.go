package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(LinkedInFile, "headline")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Generate 3 professional LinkedIn headlines")
	assert.Contains(t, prompt, "{{.Role}}")
	assert.Contains(t, prompt, "{{.Skills}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(LinkedInFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet(LinkedInFile, "summary")
		assert.Contains(t, prompt, "Write in first person")
	})
}

func TestLinkedInPrompts(t *testing.T) {
	ClearCache()

	tests := []struct {
		key          string
		placeholders []string
		requirement  string
	}{
		{"headline", []string{"{{.Role}}", "{{.Skills}}"}, "under 220 characters"},
		{"summary", []string{"{{.Background}}", "{{.Tone}}"}, "under 2000 characters"},
		{"experience", []string{"{{.JobTitle}}", "{{.Description}}"}, "Format with bullet points (•)"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			prompt, err := Get(LinkedInFile, tt.key)
			require.NoError(t, err)
			for _, p := range tt.placeholders {
				assert.Contains(t, prompt, p)
			}
			assert.Contains(t, prompt, tt.requirement)
		})
	}
}

func TestFormat(t *testing.T) {
	template := "Role: {{.Role}}\nSkills: {{.Skills}}"
	data := map[string]string{
		"Role":   "Backend Engineer",
		"Skills": "Go, Postgres",
	}

	assert.Equal(t, "Role: Backend Engineer\nSkills: Go, Postgres", Format(template, data))
}

func TestFormat_ValuesAreNotReexpanded(t *testing.T) {
	template := "Role: {{.Role}}\nSkills: {{.Skills}}"
	data := map[string]string{
		"Role":   "{{.Skills}}",
		"Skills": "Go",
	}

	assert.Equal(t, "Role: {{.Skills}}\nSkills: Go", Format(template, data))
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	assert.Equal(t, template, Format(template, map[string]string{"Key": "value"}))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, nil))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(LinkedInFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"experience", "headline", "summary"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get(LinkedInFile, "experience")
	require.NoError(t, err)

	cacheMu.RLock()
	_, cached := cache[LinkedInFile]
	cacheMu.RUnlock()
	assert.True(t, cached)

	second, err := Get(LinkedInFile, "experience")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
