// Package schemas provides JSON Schema validation for the structured payloads
// returned by the reasoning backend. A payload that parses as JSON but does
// not match its schema is treated the same as malformed JSON by callers.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema file names for the two structured backend payloads.
const (
	EvaluationSchema = "evaluation.schema.json"
	SummarySchema    = "summary.schema.json"
)

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("payload does not match %s:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against one of the embedded schemas.
// Returns a *ValidationError when the document is valid JSON but violates
// the schema, or a plain error when the document cannot be parsed at all.
func Validate(schemaName string, document []byte) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaName, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate against %s: %w", schemaName, err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: schemaName}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}

// ValidateEvaluation checks an answer-evaluation payload.
func ValidateEvaluation(document []byte) error {
	return Validate(EvaluationSchema, document)
}

// ValidateSummary checks an interview-summary payload.
func ValidateSummary(document []byte) error {
	return Validate(SummarySchema, document)
}
