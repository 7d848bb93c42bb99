package generator

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// literal renders a decoded YAML/JSON value as a TypeScript literal.
func literal(v any) (string, error) {
	b, err := json.MarshalNoEscape(v)
	if err != nil {
		return "", fmt.Errorf("rendering literal %v: %w", v, err)
	}
	return string(b), nil
}

// literals renders every value of vs.
func literals(vs []any) ([]string, error) {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		l, err := literal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// regex renders a pattern as a JavaScript regular expression literal.
func regex(pattern string) string {
	var b strings.Builder
	b.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('/')
	return b.String()
}

// allStrings reports whether every value is a string.
func allStrings(vs []any) bool {
	for _, v := range vs {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return len(vs) > 0
}

// allNumbers reports whether every value is numeric.
func allNumbers(vs []any) bool {
	for _, v := range vs {
		switch v.(type) {
		case int, int64, uint64, float64:
		default:
			return false
		}
	}
	return len(vs) > 0
}
