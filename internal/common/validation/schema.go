// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins every error into a single line for logs and BPMN error details.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// RFQSchema is the JSON schema for RFQ job variables. Optional fields accept
// null so forms can send every key. trade_type takes any string; only import
// and export carry a scoring signal.
const RFQSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["session_id"],
  "properties": {
    "session_id":        {"type": "string", "minLength": 1},
    "category":          {"type": ["string", "null"]},
    "trade_type":        {"type": ["string", "null"]},
    "description":       {"type": ["string", "null"]},
    "quality_standards": {"type": ["string", "null"]},
    "buyer_location":    {"type": ["string", "null"]},
    "buyer_company":     {"type": ["string", "null"]},
    "items": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "item_name": {"type": "string"},
          "quantity":  {"type": ["number", "null"], "minimum": 0},
          "unit":      {"type": ["string", "null"]}
        }
      }
    }
  }
}`

// Validator checks documents against one compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles a JSON schema.
func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// NewRFQValidator compiles RFQSchema.
func NewRFQValidator() (*Validator, error) {
	return NewValidator(RFQSchema)
}

// Validate checks a decoded document such as job variables.
func (v *Validator) Validate(document interface{}) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewGoLoader(document))
}

// ValidateJSON checks a raw JSON document.
func (v *Validator) ValidateJSON(raw []byte) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewBytesLoader(raw))
}

func (v *Validator) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    errorCode(desc.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

// fieldName returns the dotted path of the offending value. For "required"
// errors the context is the parent object, so the missing property is appended.
func fieldName(desc gojsonschema.ResultError) string {
	path := strings.TrimPrefix(desc.Context().String(), gojsonschema.STRING_CONTEXT_ROOT)
	path = strings.TrimPrefix(path, ".")
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if path == "" {
				return prop
			}
			return path + "." + prop
		}
	}
	return path
}

func errorCode(kind string) string {
	switch kind {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "enum":
		return "INVALID_ENUM_VALUE"
	case "number_gte", "number_gt":
		return "MIN_VALUE_VIOLATION"
	case "string_gte":
		return "MIN_LENGTH_VIOLATION"
	default:
		return strings.ToUpper(kind)
	}
}
