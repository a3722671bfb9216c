// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"jobboard-api/internal/common/errors"
)

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// ValidationResult collects the field errors of one validation pass.
type ValidationResult struct {
	Valid  bool
	Errors []errors.FieldError
}

// Compile parses a JSON schema document.
func Compile(schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(schemaJSON string) *Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks an already decoded document (maps, slices, float64, bool, string).
func (s *Schema) Validate(doc interface{}) *ValidationResult {
	return s.run(gojsonschema.NewGoLoader(doc))
}

// ValidateJSON checks a raw JSON body.
func (s *Schema) ValidateJSON(body []byte) *ValidationResult {
	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return &ValidationResult{Errors: []errors.FieldError{{
			Field:   "(root)",
			Message: "body is not valid JSON",
			Code:    "invalid_json",
		}}}
	}
	return s.run(gojsonschema.NewBytesLoader(body))
}

func (s *Schema) run(doc gojsonschema.JSONLoader) *ValidationResult {
	result, err := s.schema.Validate(doc)
	if err != nil {
		return &ValidationResult{Errors: []errors.FieldError{{
			Field:   "(root)",
			Message: err.Error(),
			Code:    "invalid_document",
		}}}
	}
	if result.Valid() {
		return &ValidationResult{Valid: true}
	}

	out := make([]errors.FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		out = append(out, errors.FieldError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	sortFieldErrors(out)
	return &ValidationResult{Errors: out}
}

// fieldName resolves root-level errors (required, additional_property_not_allowed)
// to the property they are about.
func fieldName(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if field == "(root)" {
		if prop, ok := desc.Details()["property"].(string); ok && prop != "" {
			return prop
		}
	}
	return field
}

func sortFieldErrors(errs []errors.FieldError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Field != errs[j].Field {
			return errs[i].Field < errs[j].Field
		}
		return errs[i].Code < errs[j].Code
	})
}

// Merge folds other into vr.
func (vr *ValidationResult) Merge(other *ValidationResult) *ValidationResult {
	if other == nil {
		return vr
	}
	vr.Errors = append(vr.Errors, other.Errors...)
	sortFieldErrors(vr.Errors)
	vr.Valid = len(vr.Errors) == 0
	return vr
}

// Err returns a VALIDATION_FAILED error, or nil when the result is valid.
func (vr *ValidationResult) Err(message string) error {
	if vr == nil || len(vr.Errors) == 0 {
		return nil
	}
	return errors.NewValidationFailedError(message, vr.Errors)
}

// Decode copies a validated document into a typed struct through its json tags.
func Decode(doc interface{}, out interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
