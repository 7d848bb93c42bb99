// Package refs resolves schema reference tokens and scans schemas for the
// named schemas they depend on.
package refs

import (
	"strings"

	"github.com/erraggy/oasts/parser"
)

// Reference prefixes for named schemas.
const (
	PrefixSchemas     = "#/components/schemas/"
	PrefixDefinitions = "#/definitions/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return PrefixSchemas + name
}

// ToName maps a reference token to the plain schema name it points at.
// Unknown pointer shapes fall back to their last segment.
func ToName(ref string) string {
	var name string
	switch {
	case strings.HasPrefix(ref, PrefixSchemas):
		name = ref[len(PrefixSchemas):]
	case strings.HasPrefix(ref, PrefixDefinitions):
		name = ref[len(PrefixDefinitions):]
	default:
		name = ref[strings.LastIndex(ref, "/")+1:]
	}
	return unescape(name)
}

// unescape decodes JSON pointer escapes: "~1" is '/', "~0" is '~'.
func unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}

// Dependencies returns the names of every schema referenced anywhere inside
// s, in first-seen order without duplicates.
func Dependencies(s *parser.Schema) []string {
	var deps []string
	seen := make(map[string]bool)
	var visit func(*parser.Schema)
	visit = func(s *parser.Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			name := ToName(s.Ref)
			if !seen[name] {
				seen[name] = true
				deps = append(deps, name)
			}
		}
		for _, c := range s.Children() {
			visit(c)
		}
	}
	visit(s)
	return deps
}
