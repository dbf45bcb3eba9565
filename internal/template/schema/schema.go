// Package schema defines the contract shared by the per-version template adapters and
// routes documents to them by their schemaVersion discriminator.
package schema

import (
	"fmt"
	"strings"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/template/model"
)

// Adapter turns one generation of template JSON into the canonical model.
type Adapter interface {
	SchemaVersion() string
	Parse(raw string) (*model.Contents, error)
}

// ParseError is returned for anything that prevents a document from becoming a tree:
// malformed JSON, a missing mandatory root or an unmapped enum value.
type ParseError struct {
	SchemaVersion string
	Err           error
}

func (e *ParseError) Error() string {
	if e.SchemaVersion == "" {
		return fmt.Sprintf("unable to parse template: %v", e.Err)
	}
	return fmt.Sprintf("unable to parse template for schema %s: %v", e.SchemaVersion, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MappingError reports a wire value with no canonical counterpart.
type MappingError struct {
	Field string
	Value string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no canonical mapping for %s value %q", e.Field, e.Value)
}

// Table maps wire enum names onto canonical members, case-insensitively.
type Table[T any] struct {
	field   string
	members map[string]T
}

// NewTable builds a translation table. Keys are matched ignoring case.
func NewTable[T any](field string, members map[string]T) Table[T] {
	m := make(map[string]T, len(members))
	for k, v := range members {
		m[strings.ToLower(k)] = v
	}
	return Table[T]{field: field, members: m}
}

// Map returns the canonical member for value or a *MappingError.
func (t Table[T]) Map(value string) (T, error) {
	v, ok := t.members[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		var zero T
		return zero, &MappingError{Field: t.field, Value: value}
	}
	return v, nil
}

// MapOr is Map with a fallback for values the wire format allows to be omitted.
func (t Table[T]) MapOr(value string, fallback T) (T, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return t.Map(value)
}

// EnumValues returns nil for an empty list so absent and empty look the same downstream.
func EnumValues(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
