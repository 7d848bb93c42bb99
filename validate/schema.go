package validate

import (
	"context"
	"fmt"

	goskema "github.com/reoring/goskema"
	js "github.com/reoring/goskema/jsonschema"
)

// schema is a goskema.Schema[any] backed by a parse function. Every
// compiled schema of a Set is one, so references, unions and refinements
// compose with the dsl builders.
type schema struct {
	parse func(ctx context.Context, v any) (any, error)
	json  func() (*js.Schema, error)
}

var _ goskema.Schema[any] = schema{}

func (s schema) Parse(ctx context.Context, v any) (any, error) {
	return s.parse(ctx, v)
}

func (s schema) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[any], error) {
	out, err := s.parse(ctx, v)
	return goskema.Decoded[any]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

// TypeCheck parses v: refinements only run on parsed values, so the type
// and rule phases are not separable here.
func (s schema) TypeCheck(ctx context.Context, v any) error {
	_, err := s.parse(ctx, v)
	return err
}

func (s schema) RuleCheck(ctx context.Context, v any) error     { return s.TypeCheck(ctx, v) }
func (s schema) Validate(ctx context.Context, v any) error      { return s.TypeCheck(ctx, v) }
func (s schema) ValidateValue(ctx context.Context, v any) error { return s.TypeCheck(ctx, v) }

func (s schema) JSONSchema() (*js.Schema, error) {
	if s.json == nil {
		return &js.Schema{}, nil
	}
	return s.json()
}

// from erases the type of a goskema schema. A type mismatch at the root is
// hinted with expected.
func from[T any](s goskema.Schema[T], expected string) schema {
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			out, err := s.Parse(ctx, v)
			if err != nil {
				return nil, withHint(err, "expected "+expected)
			}
			return out, nil
		},
		json: s.JSONSchema,
	}
}

// refine parses with base and passes the result through fn.
func refine(base goskema.Schema[any], fn func(v any) (any, error)) schema {
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			out, err := base.Parse(ctx, v)
			if err != nil {
				return nil, err
			}
			return fn(out)
		},
		json: base.JSONSchema,
	}
}

func withHint(err error, hint string) error {
	iss, ok := goskema.AsIssues(err)
	if !ok {
		return err
	}
	out := make(goskema.Issues, len(iss))
	for i, it := range iss {
		if it.Code == goskema.CodeInvalidType && it.Hint == "" && (it.Path == "" || it.Path == "/") {
			it.Hint = hint
		}
		out[i] = it
	}
	return out
}

// issue builds a root issue; containers rebase it under their own path.
func issue(code, format string, args ...any) goskema.Issue {
	return goskema.Issue{Path: "/", Code: code, Message: fmt.Sprintf(format, args...)}
}

func fail(code, format string, args ...any) error {
	return goskema.Issues{issue(code, format, args...)}
}

// issuesOf returns err as Issues, wrapping foreign errors as a parse error.
func issuesOf(err error) goskema.Issues {
	if iss, ok := goskema.AsIssues(err); ok {
		return iss
	}
	return goskema.Issues{{Path: "/", Code: goskema.CodeParseError, Message: err.Error(), Cause: err}}
}

// box wraps parsed values for dsl.Array and dsl.Map. With an element type
// of any, a []any or map[string]any input would match their typed fast path
// and skip element parsing.
type box struct{ v any }

type boxed struct{ inner goskema.Schema[any] }

var _ goskema.Schema[box] = boxed{}

func (b boxed) Parse(ctx context.Context, v any) (box, error) {
	out, err := b.inner.Parse(ctx, v)
	if err != nil {
		return box{}, err
	}
	return box{v: out}, nil
}

func (b boxed) ParseWithMeta(ctx context.Context, v any) (goskema.Decoded[box], error) {
	out, err := b.Parse(ctx, v)
	return goskema.Decoded[box]{Value: out, Presence: goskema.PresenceMap{"/": goskema.PresenceSeen}}, err
}

func (b boxed) TypeCheck(ctx context.Context, v any) error { return b.inner.TypeCheck(ctx, v) }
func (b boxed) RuleCheck(ctx context.Context, v any) error { return b.inner.RuleCheck(ctx, v) }
func (b boxed) Validate(ctx context.Context, v any) error  { return b.inner.Validate(ctx, v) }

// ValidateValue accepts every box: only Parse produces them.
func (b boxed) ValidateValue(context.Context, box) error { return nil }

func (b boxed) JSONSchema() (*js.Schema, error) { return b.inner.JSONSchema() }

func unboxSlice(in []box) []any {
	out := make([]any, len(in))
	for i, b := range in {
		out[i] = b.v
	}
	return out
}

func unboxMap(in map[string]box) map[string]any {
	out := make(map[string]any, len(in))
	for k, b := range in {
		out[k] = b.v
	}
	return out
}
