package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/careerforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchema_IsValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(ResumeSchema(), &v))
	assert.Equal(t, "object", v["type"])
}

func TestValidateResume_DefaultDocument(t *testing.T) {
	data, err := json.Marshal(types.DefaultResumeDocument())
	require.NoError(t, err)
	assert.NoError(t, ValidateResume(data))
}

func TestValidateResume_NullLists(t *testing.T) {
	data, err := json.Marshal(&types.ResumeDocument{PersonalInfo: types.PersonalInfo{Name: "Jane"}})
	require.NoError(t, err)
	assert.NoError(t, ValidateResume(data))
}

func TestValidateResume_WrongTypes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing personal info", `{"education":[]}`},
		{"name not a string", `{"personalInfo":{"name":42}}`},
		{"education not a list", `{"personalInfo":{},"education":{"id":"1"}}`},
		{"education item without id", `{"personalInfo":{},"education":[{"institution":"X"}]}`},
		{"unknown score type", `{"personalInfo":{},"education":[{"id":"1","scoreType":"GPA"}]}`},
		{"bullet not a string", `{"personalInfo":{},"projects":[{"id":"1","description":[1]}]}`},
		{"root not an object", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateResume_MalformedJSON(t *testing.T) {
	err := ValidateResume([]byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ResumeSchemaName, loadErr.Path)
}

func TestValidateResume_ReportsFieldPaths(t *testing.T) {
	err := ValidateResume([]byte(`{"education":[]}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)

	err = ValidateResume([]byte(`{"personalInfo":{"name":42}}`))
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "personalInfo.name", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "personalInfo.name", Message: "Invalid type."},
	}}
	assert.Equal(t, "validation failed:\n  1. personalInfo.name: Invalid type.\n", err.Error())
}
