package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/matcher"
	"github.com/erraggy/oasts/parser"
)

// zodValidator renders schemas as zod expressions. A reference to a schema
// that is not declared before the current one is wrapped in z.lazy.
type zodValidator struct {
	// position of every declared name in emission order
	position map[string]int
	// current is the position of the declaration being rendered
	current int
	// coerce renders numbers with z.coerce, for values that arrive as
	// strings such as URL path and query parameters
	coerce bool
}

var _ matcher.Algebra[emit.Fragment] = (*zodValidator)(nil)

func (z *zodValidator) Reference(_ *parser.Schema, name string) (emit.Fragment, error) {
	typeName := naming.TypeName(name)
	if at, ok := z.position[name]; ok && at >= z.current {
		return emit.Textf("z.lazy(() => %s)", typeName), nil
	}
	return emit.Text(typeName), nil
}

func (z *zodValidator) Enum(s *parser.Schema) (emit.Fragment, error) {
	lits, err := literals(s.Enum)
	if err != nil {
		return nil, err
	}
	switch {
	case allStrings(s.Enum):
		return emit.Textf("z.enum([%s])", strings.Join(lits, ", ")), nil
	case allNumbers(s.Enum):
		return emit.Textf("IntEnum([%s] as const)", strings.Join(lits, ", ")), nil
	case len(lits) == 1:
		return emit.Textf("z.literal(%s)", lits[0]), nil
	}
	members := make([]string, 0, len(lits))
	for _, l := range lits {
		members = append(members, "z.literal("+l+")")
	}
	return emit.Textf("z.union([%s])", strings.Join(members, ", ")), nil
}

func (z *zodValidator) Boolean(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("SafeBoolean"), nil
}

func (z *zodValidator) DateTime(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("z.coerce.date()"), nil
}

func (z *zodValidator) String(s *parser.Schema) (emit.Fragment, error) {
	var b strings.Builder
	b.WriteString("z.string()")
	switch s.Format {
	case "uuid":
		b.WriteString(".uuid()")
	case "ip":
		b.WriteString(".ip()")
	case "ipv4":
		b.WriteString(`.ip({ version: "v4" })`)
	case "ipv6":
		b.WriteString(`.ip({ version: "v6" })`)
	case "email":
		b.WriteString(".email()")
	}
	if s.MinLength != nil {
		fmt.Fprintf(&b, ".min(%d)", *s.MinLength)
	}
	if s.MaxLength != nil {
		fmt.Fprintf(&b, ".max(%d)", *s.MaxLength)
	}
	if s.Pattern != "" {
		fmt.Fprintf(&b, ".regex(%s)", regex(s.Pattern))
	}
	return emit.Text(b.String()), nil
}

func (z *zodValidator) number() string {
	if z.coerce {
		return "z.coerce.number()"
	}
	return "z.number()"
}

func (z *zodValidator) Number(s *parser.Schema) (emit.Fragment, error) {
	var b strings.Builder
	b.WriteString(z.number())
	if s.Minimum != nil {
		fmt.Fprintf(&b, ".min(%s)", matcher.FormatNumber(*s.Minimum))
	}
	if s.Maximum != nil {
		fmt.Fprintf(&b, ".max(%s)", matcher.FormatNumber(*s.Maximum))
	}
	return emit.Text(b.String()), nil
}

func (z *zodValidator) Integer(s *parser.Schema) (emit.Fragment, error) {
	var b strings.Builder
	b.WriteString(z.number() + ".int()")
	lo, hi := matcher.IntegerBounds(s)
	if lo != "" {
		fmt.Fprintf(&b, ".min(%s)", lo)
	}
	if hi != "" {
		fmt.Fprintf(&b, ".max(%s)", hi)
	}
	return emit.Text(b.String()), nil
}

func (z *zodValidator) Array(s *parser.Schema, items emit.Fragment) (emit.Fragment, error) {
	parts := []emit.Fragment{emit.Text("z.array("), items, emit.Text(")")}
	if s.MinItems != nil {
		parts = append(parts, emit.Textf(".min(%d)", *s.MinItems))
	}
	if s.MaxItems != nil {
		parts = append(parts, emit.Textf(".max(%d)", *s.MaxItems))
	}
	if s.UniqueItems {
		parts = append(parts, emit.Text(`.refine(uniqueItems, { message: "Items must be unique" })`))
	}
	return emit.Seq(parts...), nil
}

func (z *zodValidator) Object(_ *parser.Schema, fields []matcher.Field[emit.Fragment], extra *emit.Fragment) (emit.Fragment, error) {
	if len(fields) == 0 {
		value := emit.Text("z.unknown()")
		if extra != nil {
			value = *extra
		}
		return emit.Seq(emit.Text("z.record(z.string(), "), value, emit.Text(")")), nil
	}

	lines := make([]emit.Fragment, 0, len(fields))
	for _, f := range fields {
		modifier := emit.Text("")
		switch f.Presence {
		case matcher.Optional:
			modifier = emit.Text(".optional()")
		case matcher.Defaulted:
			lit, err := literal(f.Schema.Default)
			if err != nil {
				return nil, fmt.Errorf("default of %s: %w", f.Name, err)
			}
			modifier = emit.Textf(".default(%s)", lit)
		}
		lines = append(lines, emit.Seq(
			emit.Textf("%s: ", f.LocalName),
			f.Value,
			modifier,
			emit.Text(",\n"),
		))
	}
	return emit.Seq(
		emit.Text("z.object({\n"),
		emit.Indent(emit.Seq(lines...), "  "),
		emit.Text("})"),
	), nil
}

func (z *zodValidator) OneOf(s *parser.Schema, arms []emit.Fragment) (emit.Fragment, error) {
	if len(arms) == 1 {
		return arms[0], nil
	}
	if members, ok := flattenEnum(matcher.Arms(s)); ok {
		lits, err := literals(members)
		if err != nil {
			return nil, err
		}
		return emit.Textf("z.enum([%s])", strings.Join(lits, ", ")), nil
	}
	return emit.Seq(
		emit.Text("z.union([\n"),
		emit.Indent(emit.Seq(withTrailing(arms, ",\n")...), "  "),
		emit.Text("])"),
	), nil
}

func (z *zodValidator) AllOf(_ *parser.Schema, members []emit.Fragment) (emit.Fragment, error) {
	out := members[0]
	for _, m := range members[1:] {
		out = emit.Seq(emit.Text("z.intersection("), out, emit.Text(", "), m, emit.Text(")"))
	}
	return out, nil
}

func (z *zodValidator) Empty(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("z.unknown()"), nil
}

func (z *zodValidator) Nullable(_ *parser.Schema, inner emit.Fragment) emit.Fragment {
	return emit.Seq(inner, emit.Text(".nullable()"))
}

// flattenEnum collects the members of a union whose arms are all inline,
// non-nullable, single-member string enums.
func flattenEnum(arms []*parser.Schema) ([]any, bool) {
	members := make([]any, 0, len(arms))
	for _, a := range arms {
		if a == nil || a.Ref != "" || a.Nullable || len(a.Enum) != 1 {
			return nil, false
		}
		if _, ok := a.Enum[0].(string); !ok {
			return nil, false
		}
		members = append(members, a.Enum[0])
	}
	return members, true
}

func withTrailing(parts []emit.Fragment, suffix string) []emit.Fragment {
	out := make([]emit.Fragment, 0, len(parts))
	for _, p := range parts {
		out = append(out, emit.Seq(p, emit.Text(suffix)))
	}
	return out
}

// validatorExpression renders s as a zod expression declared at position
// current of the emission order. coerce is set for parameter objects.
func validatorExpression(s *parser.Schema, path string, position map[string]int, current int, coerce bool) (emit.Fragment, error) {
	return matcher.Walk[emit.Fragment](s, path, &zodValidator{position: position, current: current, coerce: coerce})
}
