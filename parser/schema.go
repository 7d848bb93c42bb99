package parser

import "slices"

// Schema represents an OpenAPI schema object.
//
// Only the keywords the generator understands are kept. Type is normalized to
// a single string: an OAS 3.1 type list such as ["string", "null"] decodes to
// Type "string" with Nullable set.
type Schema struct {
	Ref string

	// Metadata
	Title       string
	Description string
	// Default is nil when the keyword is absent or explicitly null.
	Default    any
	Deprecated bool
	ReadOnly   bool
	WriteOnly  bool

	Type     string
	Format   string
	Enum     []any
	Nullable bool

	// String validation
	MinLength *int
	MaxLength *int
	Pattern   string

	// Numeric validation
	Minimum *float64
	Maximum *float64

	// Array validation
	Items       *Schema
	MinItems    *int
	MaxItems    *int
	UniqueItems bool

	// Object validation. Properties keep document order.
	Properties []Property
	Required   []string
	// AdditionalProperties is nil when absent or false; `true` decodes
	// to an empty schema.
	AdditionalProperties *Schema

	// Composition
	OneOf []*Schema
	AnyOf []*Schema
	AllOf []*Schema

	// Extensions holds x-* keys
	Extensions map[string]any
}

// Property is a single named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// IsRequired reports whether the named property is in the required list.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Property returns the named property schema, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// HasDefault reports whether the schema declares a non-null default.
func (s *Schema) HasDefault() bool {
	return s != nil && s.Default != nil
}

// Children returns every directly nested schema in a stable order:
// items, properties, additionalProperties, oneOf, anyOf, allOf.
func (s *Schema) Children() []*Schema {
	if s == nil {
		return nil
	}
	var out []*Schema
	if s.Items != nil {
		out = append(out, s.Items)
	}
	for _, p := range s.Properties {
		out = append(out, p.Schema)
	}
	if s.AdditionalProperties != nil {
		out = append(out, s.AdditionalProperties)
	}
	out = append(out, s.OneOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.AllOf...)
	return out
}
