package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// renames maps wire identifiers to their replacement. Keep it small: every
// entry here changes a public name in generated code.
var renames = map[string]string{
	"Date":    "DateValue",    // shadows the global used for date-time fields
	"Record":  "RecordValue",  // shadows the utility type used for maps
	"Promise": "PromiseValue", // shadows the client's return type
}

// Rename returns the replacement for a known colliding identifier, or s. Only
// type identifiers are renamed; the case converters never are.
func Rename(s string) string {
	if r, ok := renames[s]; ok {
		return r
	}
	return s
}

// capitalize title-cases the first rune of s and leaves the rest untouched.
// A Caser is stateful, so one is built per call.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + s[size:]
}

// SnakeToCamel converts snake_case to camelCase. The first segment is kept
// as is; every later segment is capitalized.
// Example: "time_created" -> "timeCreated"
func SnakeToCamel(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

// SnakeToPascal converts snake_case to PascalCase.
// Example: "widget_create" -> "WidgetCreate"
func SnakeToPascal(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, p := range strings.Split(s, "_") {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

// PascalToCamel lower-cases the first rune.
// Example: "WidgetCreate" -> "widgetCreate"
func PascalToCamel(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// TypeName converts a component schema name into the identifier used for
// both its type and its validator. Runes that cannot appear in an identifier
// become underscores before conversion, a leading digit gets a "T" prefix and
// names that collide with TypeScript globals are renamed.
// Example: "widget-kind.v2" -> "WidgetKindV2", "date" -> "DateValue"
func TypeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
	name := Rename(SnakeToPascal(s))
	if name == "" {
		return "T"
	}
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "T" + name
	}
	return name
}

// PropertyName converts a wire property name into the local (camelCase) name.
// Names that are not valid identifiers after conversion are returned quoted.
func PropertyName(s string) string {
	name := SnakeToCamel(s)
	if IsIdentifier(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
}

// IsIdentifier reports whether s is a valid TypeScript identifier made of
// letters, digits, '_' and '$', not starting with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
