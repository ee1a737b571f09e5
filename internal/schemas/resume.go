package schemas

import (
	_ "embed"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ResumeSchemaName is the name reported in schema load errors
const ResumeSchemaName = "resume.schema.json"

//go:embed resources/resume.schema.json
var resumeSchemaJSON []byte

var (
	resumeSchemaOnce sync.Once
	resumeSchema     *gojsonschema.Schema
	resumeSchemaErr  error
)

// ResumeSchema returns the raw JSON Schema for persisted resume documents
func ResumeSchema() []byte {
	return append([]byte(nil), resumeSchemaJSON...)
}

// ValidateResume validates a serialized resume document against the embedded schema.
// Malformed JSON is reported as a *SchemaLoadError, shape errors as a *ValidationError.
func ValidateResume(data []byte) error {
	resumeSchemaOnce.Do(func() {
		resumeSchema, resumeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchemaJSON))
	})
	if resumeSchemaErr != nil {
		return &SchemaLoadError{Path: ResumeSchemaName, Message: "invalid embedded schema", Cause: resumeSchemaErr}
	}

	result, err := resumeSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: ResumeSchemaName, Message: "document could not be loaded", Cause: err}
	}
	return resultError(result)
}
