// Package schemas validates fixture documents against the JSON schema of their variant and format.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/nardo/usecase-tracker/internal/fixture"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.json
var schemaFiles embed.FS

// ValidationError represents a schema validation error with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading the schema or the document to validate.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Schema returns the raw JSON schema of documents of variant v written in format f.
func Schema(v fixture.Variant, f fixture.Format) ([]byte, error) {
	name := schemaName(v, f)
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{
			Path:    name,
			Message: fmt.Sprintf("no schema for variant %q and format %q", v, f),
			Cause:   err,
		}
	}
	return data, nil
}

// Validate validates a fixture document of variant v written in format f.
func Validate(v fixture.Variant, f fixture.Format, document []byte) error {
	schema, err := Schema(v, f)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName(v, f),
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}

// ValidateFile validates the fixture document at path.
func ValidateFile(v fixture.Variant, f fixture.Format, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &SchemaLoadError{
			Path:    path,
			Message: "could not read document",
			Cause:   err,
		}
	}
	return Validate(v, f, data)
}

func schemaName(v fixture.Variant, f fixture.Format) string {
	return fmt.Sprintf("json/%s.%s.json", v, f)
}
