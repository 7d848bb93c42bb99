package matcher

import (
	"fmt"

	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/internal/refs"
	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/parser"
)

// Variant is the classification of a schema.
type Variant int

// Variants in classification order.
const (
	Reference Variant = iota
	Enum
	Boolean
	DateTime
	String
	Number
	Integer
	Array
	Object
	OneOf
	AllOf
	Empty
)

var variantNames = [...]string{
	Reference: "reference",
	Enum:      "enum",
	Boolean:   "boolean",
	DateTime:  "date-time",
	String:    "string",
	Number:    "number",
	Integer:   "integer",
	Array:     "array",
	Object:    "object",
	OneOf:     "oneOf",
	AllOf:     "allOf",
	Empty:     "empty",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// FormatDateTime is the string format classified as DateTime.
const FormatDateTime = "date-time"

// Classify returns the variant of s. The checks run in a fixed order and the
// first match wins.
func Classify(s *parser.Schema) (Variant, error) {
	switch {
	case s == nil:
		return Empty, nil
	case s.Ref != "":
		return Reference, nil
	case len(s.Enum) > 0:
		return Enum, nil
	case s.Type == "boolean":
		return Boolean, nil
	case s.Type == "string" && s.Format == FormatDateTime:
		return DateTime, nil
	case s.Type == "string":
		return String, nil
	case s.Type == "number":
		return Number, nil
	case s.Type == "integer":
		return Integer, nil
	case s.Type == "array":
		return Array, nil
	case isObject(s):
		return Object, nil
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return OneOf, nil
	case len(s.AllOf) > 0:
		return AllOf, nil
	case isEmpty(s):
		return Empty, nil
	}
	return 0, &oaserrors.UnhandledSchemaError{Schema: s}
}

// isObject accepts an explicit object type, or an untyped schema that only
// makes sense as one.
func isObject(s *parser.Schema) bool {
	if s.Type == "object" {
		return true
	}
	return s.Type == "" && (len(s.Properties) > 0 || s.AdditionalProperties != nil)
}

// isEmpty reports a schema with no structural keywords at all. Metadata
// such as a description or default is allowed.
func isEmpty(s *parser.Schema) bool {
	return s.Type == "" &&
		s.Items == nil &&
		len(s.Properties) == 0 &&
		len(s.Required) == 0 &&
		s.AdditionalProperties == nil &&
		len(s.OneOf) == 0 && len(s.AnyOf) == 0 && len(s.AllOf) == 0
}

// Arms returns the alternatives of a union schema: oneOf, or anyOf when
// oneOf is absent.
func Arms(s *parser.Schema) []*parser.Schema {
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return s.AnyOf
}

// Presence is how a property may appear in an object.
type Presence int

const (
	// Required properties must be present.
	Required Presence = iota
	// Optional properties may be absent and stay absent.
	Optional
	// Defaulted properties may be absent; validators substitute the default.
	Defaulted
)

func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Defaulted:
		return "defaulted"
	}
	return fmt.Sprintf("Presence(%d)", int(p))
}

// PresenceOf decides the presence of property name of object s. A default
// wins over the required list: a property with a default can always be
// omitted.
func PresenceOf(s *parser.Schema, name string, prop *parser.Schema) Presence {
	switch {
	case prop.HasDefault():
		return Defaulted
	case s.IsRequired(name):
		return Required
	}
	return Optional
}

// Field is a walked object property.
type Field[R any] struct {
	// Name is the wire (document) name
	Name string
	// LocalName is the converted name used in generated code
	LocalName string
	Schema    *parser.Schema
	Presence  Presence
	Value     R
}

// Algebra is one output target. Each method receives the schema being
// matched and, for composite variants, the already computed results of its
// children.
type Algebra[R any] interface {
	Reference(s *parser.Schema, name string) (R, error)
	Enum(s *parser.Schema) (R, error)
	Boolean(s *parser.Schema) (R, error)
	DateTime(s *parser.Schema) (R, error)
	String(s *parser.Schema) (R, error)
	Number(s *parser.Schema) (R, error)
	Integer(s *parser.Schema) (R, error)
	Array(s *parser.Schema, items R) (R, error)
	// Object receives fields in document order. extra is nil unless the
	// schema declares additionalProperties.
	Object(s *parser.Schema, fields []Field[R], extra *R) (R, error)
	OneOf(s *parser.Schema, arms []R) (R, error)
	AllOf(s *parser.Schema, members []R) (R, error)
	Empty(s *parser.Schema) (R, error)
	// Nullable wraps the result of any variant whose schema is nullable.
	Nullable(s *parser.Schema, inner R) R
}

// Walk matches s with alg. path names s in error messages.
func Walk[R any](s *parser.Schema, path string, alg Algebra[R]) (R, error) {
	var zero R
	if s == nil {
		s = &parser.Schema{}
	}
	v, err := Classify(s)
	if err != nil {
		return zero, &oaserrors.UnhandledSchemaError{Path: path, Schema: s}
	}

	var out R
	switch v {
	case Reference:
		out, err = alg.Reference(s, refs.ToName(s.Ref))
	case Enum:
		out, err = alg.Enum(s)
	case Boolean:
		out, err = alg.Boolean(s)
	case DateTime:
		out, err = alg.DateTime(s)
	case String:
		out, err = alg.String(s)
	case Number:
		out, err = alg.Number(s)
	case Integer:
		out, err = alg.Integer(s)
	case Array:
		var items R
		if items, err = Walk(s.Items, path+".items", alg); err != nil {
			return zero, err
		}
		out, err = alg.Array(s, items)
	case Object:
		out, err = walkObject(s, path, alg)
	case OneOf:
		var arms []R
		if arms, err = walkList(Arms(s), path+".oneOf", alg); err != nil {
			return zero, err
		}
		out, err = alg.OneOf(s, arms)
	case AllOf:
		var members []R
		if members, err = walkList(s.AllOf, path+".allOf", alg); err != nil {
			return zero, err
		}
		out, err = alg.AllOf(s, members)
	case Empty:
		out, err = alg.Empty(s)
	default:
		err = fmt.Errorf("matcher: no handler for variant %v", v)
	}
	if err != nil {
		return zero, err
	}

	if s.Nullable {
		out = alg.Nullable(s, out)
	}
	return out, nil
}

func walkList[R any](schemas []*parser.Schema, path string, alg Algebra[R]) ([]R, error) {
	out := make([]R, 0, len(schemas))
	for i, c := range schemas {
		r, err := Walk(c, fmt.Sprintf("%s[%d]", path, i), alg)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func walkObject[R any](s *parser.Schema, path string, alg Algebra[R]) (R, error) {
	var zero R
	fields := make([]Field[R], 0, len(s.Properties))
	for _, p := range s.Properties {
		r, err := Walk(p.Schema, path+".properties."+p.Name, alg)
		if err != nil {
			return zero, err
		}
		fields = append(fields, Field[R]{
			Name:      p.Name,
			LocalName: naming.PropertyName(p.Name),
			Schema:    p.Schema,
			Presence:  PresenceOf(s, p.Name, p.Schema),
			Value:     r,
		})
	}

	var extra *R
	if s.AdditionalProperties != nil {
		r, err := Walk(s.AdditionalProperties, path+".additionalProperties", alg)
		if err != nil {
			return zero, err
		}
		extra = &r
	}
	return alg.Object(s, fields, extra)
}
