package llm

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is a named JSON schema derived from a Go record type.
type Schema struct {
	Name        string
	Description string

	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
}

// NewSchema derives the JSON schema for T from its struct and json tags.
// Fields without omitempty are required.
func NewSchema[T any](name, description string) (*Schema, error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to derive schema %s: %w", name, err)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema %s: %w", name, err)
	}

	return &Schema{
		Name:        name,
		Description: description,
		schema:      s,
		resolved:    resolved,
	}, nil
}

// MustSchema is NewSchema for package-level schemas of known-good types.
func MustSchema[T any](name, description string) *Schema {
	s, err := NewSchema[T](name, description)
	if err != nil {
		panic(err)
	}
	return s
}

// Map returns the schema as a generic JSON object.
func (s *Schema) Map() (map[string]any, error) {
	raw, err := json.Marshal(s.schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema %s: %w", s.Name, err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema %s: %w", s.Name, err)
	}

	return m, nil
}

// Validate checks raw against the schema.
func (s *Schema) Validate(raw json.RawMessage) error {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("%w: %s: invalid JSON: %w", ErrSchemaMismatch, s.Name, err)
	}

	if err := s.resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, s.Name, err)
	}

	return nil
}

// Decode unmarshals a structured response into T.
func Decode[T any](resp Response) (T, error) {
	var out T
	if len(resp.Structured) == 0 {
		return out, fmt.Errorf("%w: no structured content", ErrSchemaMismatch)
	}

	if err := json.Unmarshal(resp.Structured, &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}

	return out, nil
}
