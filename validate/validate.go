package validate

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/erraggy/oasts/matcher"
	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/parser"
	"github.com/goccy/go-json"
	goskema "github.com/reoring/goskema"
)

// Set holds a compiled goskema schema for every component schema of a
// document.
type Set struct {
	schemas map[string]goskema.Schema[any]
	names   []string
}

// Compile builds the schemas for every component schema of doc. It fails on
// schemas the matcher cannot classify and on patterns Go cannot compile.
func Compile(doc *parser.Document) (*Set, error) {
	set := &Set{schemas: make(map[string]goskema.Schema[any], len(doc.Components.Schemas))}
	c := &compiler{set: set}
	for _, ns := range doc.Components.Schemas {
		if _, dup := set.schemas[ns.Name]; dup {
			continue
		}
		s, err := matcher.Walk[goskema.Schema[any]](ns.Schema, ns.Name, c)
		if err != nil {
			return nil, fmt.Errorf("validate: %w", err)
		}
		set.schemas[ns.Name] = s
		set.names = append(set.names, ns.Name)
	}
	return set, nil
}

// Names returns the schema names of the set in document order.
func (s *Set) Names() []string {
	return slices.Clone(s.names)
}

// Has reports whether the set has a schema named name.
func (s *Set) Has(name string) bool {
	_, ok := s.schemas[name]
	return ok
}

// Schema returns the compiled schema named name, for use with the goskema
// entry points such as goskema.ParseFrom and Schema.JSONSchema.
func (s *Set) Schema(name string) (goskema.Schema[any], bool) {
	gs, ok := s.schemas[name]
	return gs, ok
}

// Validate checks value against the named schema. value uses the shapes
// produced by decoding JSON: map[string]any, []any, string, bool, nil and
// any Go or json.Number numeric. On success it returns value with defaults
// applied, undeclared properties dropped and numbers as json.Number;
// otherwise the error is a *oaserrors.ValidationError listing every issue.
func (s *Set) Validate(name string, value any) (any, error) {
	return s.ValidateContext(context.Background(), name, value)
}

// ValidateContext is Validate with a context for the goskema parse.
func (s *Set) ValidateContext(ctx context.Context, name string, value any) (any, error) {
	gs, ok := s.schemas[name]
	if !ok {
		return nil, &oaserrors.ConfigError{Option: "schema", Value: name, Message: "no schema with this name"}
	}
	out, err := gs.Parse(ctx, value)
	if err != nil {
		return nil, &oaserrors.ValidationError{Schema: name, Issues: convertIssues(issuesOf(err))}
	}
	return out, nil
}

// convertIssues maps goskema issues onto the module's error type. The root
// pointer "/" becomes the empty path and a hint that adds to the message is
// kept in parentheses.
func convertIssues(iss goskema.Issues) []oaserrors.ValidationIssue {
	out := make([]oaserrors.ValidationIssue, 0, len(iss))
	for _, it := range iss {
		path := it.Path
		if path == "/" {
			path = ""
		}
		msg := it.Message
		if it.Hint != "" && it.Hint != msg {
			msg += " (" + it.Hint + ")"
		}
		out = append(out, oaserrors.ValidationIssue{Path: path, Code: it.Code, Message: msg})
	}
	return out
}

// ValidateJSON decodes data, keeping numbers exact, and validates it.
func (s *Set) ValidateJSON(name string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &oaserrors.ParseError{Path: "<value>", Message: "decoding JSON value", Cause: err}
	}
	return s.Validate(name, v)
}
