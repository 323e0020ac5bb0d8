package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fieldservice/internal/pkg/errs"
)

// ErrSchemaValidation is the sentinel wrapped by every SchemaValidationError.
var ErrSchemaValidation = errors.New("captured data does not match template schema")

// Record is the captured-data document a technician produces while executing
// a work order. Values follow encoding/json conventions (string, float64,
// bool, map[string]any, []any).
type Record map[string]any

// Clone returns a shallow copy of the record. Nested containers are shared;
// callers treat records as immutable once bound.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FieldType enumerates the value kinds a schema field may declare. The names
// follow the JSON-Schema vocabulary used by the stored template documents.
type FieldType string

const (
	TypeObject  FieldType = "object"
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
)

// Validate checks that the field type is one of the supported kinds.
func (t FieldType) Validate() error {
	switch t {
	case TypeObject, TypeString, TypeNumber, TypeInteger, TypeBoolean, TypeArray:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"field type",
			fmt.Errorf("%q is not a supported schema type", string(t)),
		)
	}
}

// ValidationMode selects how strictly a record is reconciled against the
// schema.
type ValidationMode int

const (
	// CompleteValidation enforces every required field; it gates the
	// transition into the completed status.
	CompleteValidation ValidationMode = iota + 1

	// PartialValidation tolerates missing required fields but still rejects
	// type mismatches on the fields that are present. Used for progress
	// saves.
	PartialValidation
)

// Schema is the declarative structural descriptor a service template carries:
// which fields must be captured to complete an order of that service type,
// and what shape each value takes. It is parsed from the JSON-Schema-subset
// documents the template catalog stores.
//
// Nested objects may declare their own properties; an object field without
// declared properties accepts any value (leaf passthrough for
// forward-compatibility).
type Schema struct {
	Type       FieldType          `json:"type"`
	Title      string             `json:"title,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
}

// ParseSchema decodes and structurally validates a schema document. The root
// must be an object; every declared type must be supported; every required
// name must reference a declared property.
func ParseSchema(doc json.RawMessage) (Schema, error) {
	if len(doc) == 0 {
		return Schema{}, errs.NewValueIsRequiredError("schema document")
	}

	var schema Schema
	if err := json.Unmarshal(doc, &schema); err != nil {
		return Schema{}, errs.NewValueIsInvalidErrorWithCause("schema document", err)
	}

	if schema.Type != TypeObject {
		return Schema{}, errs.NewValueIsInvalidErrorWithCause(
			"schema document",
			fmt.Errorf("root type must be object, got %q", string(schema.Type)),
		)
	}

	if err := schema.validateStructure(""); err != nil {
		return Schema{}, err
	}

	return schema, nil
}

// Document re-encodes the schema to its canonical JSON form for persistence.
func (s Schema) Document() (json.RawMessage, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("schema document", err)
	}
	return raw, nil
}

func (s *Schema) validateStructure(path string) error {
	if err := s.Type.Validate(); err != nil {
		return err
	}

	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return errs.NewValueIsInvalidErrorWithCause(
				"schema document",
				fmt.Errorf("required field %q is not declared at %q", name, orRoot(path)),
			)
		}
	}

	for name, prop := range s.Properties {
		if prop == nil {
			return errs.NewValueIsInvalidErrorWithCause(
				"schema document",
				fmt.Errorf("property %q at %q has no definition", name, orRoot(path)),
			)
		}
		if err := prop.validateStructure(joinPath(path, name)); err != nil {
			return err
		}
	}

	if s.Items != nil {
		if err := s.Items.validateStructure(joinPath(path, "[]")); err != nil {
			return err
		}
	}

	return nil
}

// ValidateOptions tunes unknown-field handling below the top level. Unknown
// top-level fields are always rejected.
type ValidateOptions struct {
	// RejectUnknownNested extends unknown-field rejection to nested objects
	// that declare properties. Off by default so old records survive schema
	// growth.
	RejectUnknownNested bool
}

// Validate reconciles a captured-data record against the schema using default
// options: unknown top-level fields rejected, nested passthrough allowed.
func (s Schema) Validate(data Record, mode ValidationMode) error {
	return s.ValidateWithOptions(data, mode, ValidateOptions{})
}

// ValidateWithOptions reconciles a captured-data record against the schema.
// All offending field paths are collected before reporting, so the caller can
// surface the full list to the data-entry UI at once.
func (s Schema) ValidateWithOptions(data Record, mode ValidationMode, opts ValidateOptions) error {
	if mode != CompleteValidation && mode != PartialValidation {
		return errs.NewValueIsInvalidError("validation mode")
	}

	var offending []string
	s.validateObject(map[string]any(data), "", mode, opts, true, &offending)

	if len(offending) > 0 {
		return NewSchemaValidationError(offending)
	}
	return nil
}

func (s *Schema) validateObject(
	value map[string]any,
	path string,
	mode ValidationMode,
	opts ValidateOptions,
	topLevel bool,
	offending *[]string,
) {
	if mode == CompleteValidation {
		for _, name := range s.Required {
			if _, ok := value[name]; !ok {
				*offending = append(*offending, joinPath(path, name))
			}
		}
	}

	rejectUnknown := topLevel || opts.RejectUnknownNested
	for name, fieldValue := range value {
		prop, declared := s.Properties[name]
		if !declared {
			if rejectUnknown {
				*offending = append(*offending, joinPath(path, name))
			}
			continue
		}
		prop.validateValue(fieldValue, joinPath(path, name), mode, opts, offending)
	}
}

func (s *Schema) validateValue(
	value any,
	path string,
	mode ValidationMode,
	opts ValidateOptions,
	offending *[]string,
) {
	if value == nil {
		// Null never satisfies a declared field; a field the caller wants to
		// leave empty is simply omitted.
		*offending = append(*offending, path)
		return
	}

	switch s.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			*offending = append(*offending, path)
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			*offending = append(*offending, path)
		}
	case TypeNumber:
		if !isNumber(value) {
			*offending = append(*offending, path)
		}
	case TypeInteger:
		if !isInteger(value) {
			*offending = append(*offending, path)
		}
	case TypeObject:
		nested, ok := value.(map[string]any)
		if !ok {
			if _, isRecord := value.(Record); isRecord {
				nested = map[string]any(value.(Record))
			} else {
				*offending = append(*offending, path)
				return
			}
		}
		if len(s.Properties) == 0 {
			// Leaf passthrough: object without declared properties accepts
			// any shape.
			return
		}
		s.validateObject(nested, path, mode, opts, false, offending)
	case TypeArray:
		items, ok := value.([]any)
		if !ok {
			*offending = append(*offending, path)
			return
		}
		if s.Items == nil {
			return
		}
		for i, item := range items {
			s.Items.validateValue(item, fmt.Sprintf("%s[%d]", path, i), mode, opts, offending)
		}
	}
}

func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return true
	default:
		return false
	}
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == float64(int64(v))
	case float32:
		return v == float32(int64(v))
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func orRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}

// SchemaValidationError reports every field path that failed reconciliation.
// Paths are dotted (e.g. "meter.reading") and sorted for stable output.
type SchemaValidationError struct {
	FieldPaths []string
}

// NewSchemaValidationError creates a SchemaValidationError from the collected
// offending paths.
func NewSchemaValidationError(fieldPaths []string) *SchemaValidationError {
	sorted := make([]string, len(fieldPaths))
	copy(sorted, fieldPaths)
	sort.Strings(sorted)
	return &SchemaValidationError{FieldPaths: sorted}
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaValidation, strings.Join(e.FieldPaths, ", "))
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}
