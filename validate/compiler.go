package validate

import (
	"context"
	"fmt"
	"net/mail"
	"net/netip"
	"regexp"
	"strings"
	"time"

	"github.com/erraggy/oasts/matcher"
	"github.com/erraggy/oasts/parser"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	goskema "github.com/reoring/goskema"
	"github.com/reoring/goskema/codec"
	"github.com/reoring/goskema/dsl"
	js "github.com/reoring/goskema/jsonschema"
)

// compiler builds goskema schemas with the same semantics as the generated
// zod validators. Structure comes from the dsl builders; the zod behaviour
// goskema has no builder for is added as refinements.
type compiler struct {
	set *Set
}

var _ matcher.Algebra[goskema.Schema[any]] = (*compiler)(nil)

// Reference looks the target up when parsing, so forward and recursive
// references work.
func (c *compiler) Reference(_ *parser.Schema, name string) (goskema.Schema[any], error) {
	return schema{parse: func(ctx context.Context, v any) (any, error) {
		target, ok := c.set.schemas[name]
		if !ok {
			return nil, fail(goskema.CodeParseError, "unknown schema %q", name)
		}
		return target.Parse(ctx, v)
	}}, nil
}

func (c *compiler) Enum(s *parser.Schema) (goskema.Schema[any], error) {
	members := s.Enum
	return schema{parse: func(_ context.Context, v any) (any, error) {
		for _, m := range members {
			if equal(v, m) {
				if n, ok := toNumber(v); ok {
					return n, nil
				}
				return v, nil
			}
		}
		return nil, fail(goskema.CodeInvalidEnum, "expected one of %s, got %s", describe(members), describe([]any{v}))
	}}, nil
}

// Boolean accepts any value: the string "false" is false and everything
// else follows JavaScript truthiness.
func (c *compiler) Boolean(*parser.Schema) (goskema.Schema[any], error) {
	base := dsl.Bool()
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			if s, ok := v.(string); ok && s == "false" {
				return base.Parse(ctx, false)
			}
			return base.Parse(ctx, truthy(v))
		},
		json: base.JSONSchema,
	}, nil
}

// DateTime decodes RFC 3339 strings and epoch milliseconds to time.Time.
func (c *compiler) DateTime(*parser.Schema) (goskema.Schema[any], error) {
	wire := dsl.Codec(codec.TimeRFC3339())
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			switch x := v.(type) {
			case time.Time:
				return x, nil
			case string:
				t, err := wire.Parse(ctx, x)
				if err != nil {
					return nil, err
				}
				return t, nil
			}
			if n, ok := toRat(v); ok {
				ms, _ := n.Float64()
				return time.UnixMilli(int64(ms)).UTC(), nil
			}
			return nil, fail(goskema.CodeInvalidType, "expected date, got %s", kind(v))
		},
		json: func() (*js.Schema, error) { return &js.Schema{Type: "string", Format: "date-time"}, nil },
	}, nil
}

func (c *compiler) String(s *parser.Schema) (goskema.Schema[any], error) {
	var pattern *regexp.Regexp
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.Pattern, err)
		}
		pattern = re
	}
	format := s.Format
	minLen, maxLen := s.MinLength, s.MaxLength
	return refine(from(dsl.String(), "string"), func(v any) (any, error) {
		str := v.(string)
		var iss goskema.Issues
		if msg := checkFormat(format, str); msg != "" {
			iss = goskema.AppendIssues(iss, issue(goskema.CodeInvalidFormat, "%s", msg))
		}
		n := jsLength(str)
		if minLen != nil && n < *minLen {
			iss = goskema.AppendIssues(iss, issue(goskema.CodeTooShort, "string must contain at least %d character(s)", *minLen))
		}
		if maxLen != nil && n > *maxLen {
			iss = goskema.AppendIssues(iss, issue(goskema.CodeTooLong, "string must contain at most %d character(s)", *maxLen))
		}
		if pattern != nil && !pattern.MatchString(str) {
			iss = goskema.AppendIssues(iss, issue(goskema.CodePattern, "string does not match pattern %s", pattern))
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return str, nil
	}), nil
}

func checkFormat(format, s string) string {
	switch format {
	case "uuid":
		if len(s) != 36 || uuid.Validate(s) != nil {
			return "invalid uuid"
		}
	case "ip":
		if _, err := netip.ParseAddr(s); err != nil {
			return "invalid ip"
		}
	case "ipv4":
		if a, err := netip.ParseAddr(s); err != nil || !a.Is4() {
			return "invalid ipv4"
		}
	case "ipv6":
		if a, err := netip.ParseAddr(s); err != nil || !a.Is6() {
			return "invalid ipv6"
		}
	case "email":
		if a, err := mail.ParseAddress(s); err != nil || a.Address != s {
			return "invalid email"
		}
	}
	return ""
}

func (c *compiler) Number(s *parser.Schema) (goskema.Schema[any], error) {
	var lo, hi string
	if s.Minimum != nil {
		lo = matcher.FormatNumber(*s.Minimum)
	}
	if s.Maximum != nil {
		hi = matcher.FormatNumber(*s.Maximum)
	}
	return numberSchema(lo, hi, false), nil
}

func (c *compiler) Integer(s *parser.Schema) (goskema.Schema[any], error) {
	lo, hi := matcher.IntegerBounds(s)
	return numberSchema(lo, hi, true), nil
}

// numberSchema parses with dsl.NumberJSON and checks the bounds exactly.
// Every accepted number comes out as a json.Number.
func numberSchema(lo, hi string, integer bool) goskema.Schema[any] {
	lower, upper := parseBound(lo), parseBound(hi)
	base := from[json.Number](dsl.NumberJSON(), "number")
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			if n, ok := toNumber(v); ok {
				v = n
			}
			out, err := base.Parse(ctx, v)
			if err != nil {
				return nil, err
			}
			num := out.(json.Number)
			r, ok := toRat(num)
			if !ok {
				return nil, fail(goskema.CodeInvalidType, "expected number, got %s", num)
			}
			var iss goskema.Issues
			if integer && !r.IsInt() {
				iss = goskema.AppendIssues(iss, issue(goskema.CodeInvalidType, "expected integer, got %s", r.FloatString(6)))
			}
			if lower != nil && r.Cmp(lower) < 0 {
				iss = goskema.AppendIssues(iss, issue(goskema.CodeTooSmall, "number must be greater than or equal to %s", lo))
			}
			if upper != nil && r.Cmp(upper) > 0 {
				iss = goskema.AppendIssues(iss, issue(goskema.CodeTooBig, "number must be less than or equal to %s", hi))
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return num, nil
		},
		json: base.JSONSchema,
	}
}

func (c *compiler) Array(s *parser.Schema, items goskema.Schema[any]) (goskema.Schema[any], error) {
	list := dsl.Array[box](boxed{inner: items})
	if s.MinItems != nil {
		list = list.Min(*s.MinItems)
	}
	if s.MaxItems != nil {
		list = list.Max(*s.MaxItems)
	}
	unique := s.UniqueItems
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			out, err := list.Parse(ctx, v)
			if err != nil {
				return nil, err
			}
			values := unboxSlice(out)
			if unique && !uniqueItems(values) {
				return nil, fail(goskema.CodeUniqueness, "Items must be unique")
			}
			return values, nil
		},
		json: list.JSONSchema,
	}, nil
}

func uniqueItems(list []any) bool {
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		key, ok := uniqueKey(e)
		if !ok {
			continue
		}
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// Object checks declared properties by wire name and strips the rest. An
// object without properties is a record of extra, or of anything.
func (c *compiler) Object(_ *parser.Schema, fields []matcher.Field[goskema.Schema[any]], extra *goskema.Schema[any]) (goskema.Schema[any], error) {
	if len(fields) == 0 {
		if extra == nil {
			return refine(from(dsl.MapAny(), "object"), func(v any) (any, error) {
				return copyValue(v), nil
			}), nil
		}
		record := dsl.Map[box](boxed{inner: *extra})
		return schema{
			parse: func(ctx context.Context, v any) (any, error) {
				out, err := record.Parse(ctx, v)
				if err != nil {
					return nil, err
				}
				return unboxMap(out), nil
			},
			json: record.JSONSchema,
		}, nil
	}

	b := dsl.Object()
	for _, f := range fields {
		step := b.Field(f.Name, dsl.SchemaOf[any](f.Value))
		switch f.Presence {
		case matcher.Required:
			step.Required()
		case matcher.Defaulted:
			step.Default(f.Schema.Default)
		default:
			step.Optional()
		}
	}
	obj, err := b.UnknownStrip().Build()
	if err != nil {
		return nil, err
	}
	return from(obj, "object"), nil
}

// OneOf returns the result of the first arm that accepts the value.
func (c *compiler) OneOf(_ *parser.Schema, arms []goskema.Schema[any]) (goskema.Schema[any], error) {
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			for _, arm := range arms {
				if out, err := arm.Parse(ctx, v); err == nil {
					return out, nil
				}
			}
			return nil, fail(goskema.CodeInvalidType, "value matches none of %d alternatives", len(arms))
		},
		json: func() (*js.Schema, error) {
			out := &js.Schema{}
			for _, arm := range arms {
				s, err := arm.JSONSchema()
				if err != nil {
					return nil, err
				}
				out.OneOf = append(out.OneOf, s)
			}
			return out, nil
		},
	}, nil
}

// AllOf requires every member to accept the value and merges their results.
func (c *compiler) AllOf(_ *parser.Schema, members []goskema.Schema[any]) (goskema.Schema[any], error) {
	return schema{parse: func(ctx context.Context, v any) (any, error) {
		var (
			out      any
			have     bool
			conflict bool
			iss      goskema.Issues
		)
		for _, m := range members {
			res, err := m.Parse(ctx, v)
			if err != nil {
				iss = goskema.AppendIssues(iss, issuesOf(err)...)
				continue
			}
			if !have {
				out, have = res, true
				continue
			}
			merged, ok := merge(out, res)
			conflict = conflict || !ok
			out = merged
		}
		if len(iss) > 0 {
			return nil, iss
		}
		if conflict {
			return nil, fail(goskema.CodeConflict, "intersection results could not be merged")
		}
		return out, nil
	}}, nil
}

// Empty accepts anything. The copy keeps defaults from aliasing the
// document.
func (c *compiler) Empty(*parser.Schema) (goskema.Schema[any], error) {
	return schema{parse: func(_ context.Context, v any) (any, error) {
		return copyValue(v), nil
	}}, nil
}

func (c *compiler) Nullable(_ *parser.Schema, inner goskema.Schema[any]) goskema.Schema[any] {
	return schema{
		parse: func(ctx context.Context, v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			return inner.Parse(ctx, v)
		},
		json: inner.JSONSchema,
	}
}

func describe(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			parts = append(parts, fmt.Sprint(v))
			continue
		}
		parts = append(parts, string(b))
	}
	return strings.Join(parts, ", ")
}
