package generator

import (
	"strings"

	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/matcher"
	"github.com/erraggy/oasts/parser"
)

// tsType renders schemas as TypeScript type expressions.
type tsType struct{}

var _ matcher.Algebra[emit.Fragment] = tsType{}

func (tsType) Reference(_ *parser.Schema, name string) (emit.Fragment, error) {
	return emit.Text(naming.TypeName(name)), nil
}

func (tsType) Enum(s *parser.Schema) (emit.Fragment, error) {
	lits, err := literals(s.Enum)
	if err != nil {
		return nil, err
	}
	return emit.Text(strings.Join(lits, " | ")), nil
}

func (tsType) Boolean(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("boolean"), nil
}

func (tsType) DateTime(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("Date"), nil
}

func (tsType) String(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("string"), nil
}

func (tsType) Number(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("number"), nil
}

func (tsType) Integer(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("number"), nil
}

func (tsType) Array(_ *parser.Schema, items emit.Fragment) (emit.Fragment, error) {
	return emit.Seq(emit.Text("("), items, emit.Text(")[]")), nil
}

func (tsType) Object(_ *parser.Schema, fields []matcher.Field[emit.Fragment], extra *emit.Fragment) (emit.Fragment, error) {
	if len(fields) == 0 {
		value := emit.Text("unknown")
		if extra != nil {
			value = *extra
		}
		return emit.Seq(emit.Text("Record<string, "), value, emit.Text(">")), nil
	}

	lines := make([]emit.Fragment, 0, len(fields))
	for _, f := range fields {
		opt := ""
		if f.Presence != matcher.Required {
			opt = "?"
		}
		lines = append(lines, emit.Seq(
			docComment(f.Schema.Description),
			emit.Textf("%s%s:", f.LocalName, opt),
			assigned(f.Value),
			emit.Text(";\n"),
		))
	}
	return emit.Seq(
		emit.Text("{\n"),
		emit.Indent(emit.Seq(lines...), "  "),
		emit.Text("}"),
	), nil
}

func (tsType) OneOf(s *parser.Schema, arms []emit.Fragment) (emit.Fragment, error) {
	if len(arms) == 1 {
		return arms[0], nil
	}
	schemas := matcher.Arms(s)
	documented := false
	for _, a := range schemas {
		if a != nil && a.Description != "" {
			documented = true
		}
	}
	if !documented {
		return emit.Join(arms, " | "), nil
	}

	lines := make([]emit.Fragment, 0, len(arms))
	for i, arm := range arms {
		lines = append(lines, emit.Seq(
			docComment(schemas[i].Description),
			emit.Text("| "),
			arm,
			emit.Text("\n"),
		))
	}
	return emit.Seq(emit.Text("\n"), emit.Indent(emit.Seq(lines...), "  ")), nil
}

func (tsType) AllOf(s *parser.Schema, members []emit.Fragment) (emit.Fragment, error) {
	if len(members) == 1 {
		return members[0], nil
	}
	parts := make([]emit.Fragment, 0, len(members))
	for i, m := range members {
		if rendersUnion(s.AllOf[i]) {
			m = parenthesize(m)
		}
		parts = append(parts, m)
	}
	return emit.Join(parts, " & "), nil
}

func (tsType) Empty(*parser.Schema) (emit.Fragment, error) {
	return emit.Text("unknown"), nil
}

func (tsType) Nullable(_ *parser.Schema, inner emit.Fragment) emit.Fragment {
	text := emit.String(inner)
	if strings.HasSuffix(strings.TrimSpace(text), "| null") {
		return inner
	}
	return emit.Text(strings.TrimSuffix(text, "\n") + " | null")
}

// rendersUnion reports whether the type of s is a top-level union, which
// must be parenthesized to bind as one operand of &. Nullable schemas always
// are, whatever their variant.
func rendersUnion(s *parser.Schema) bool {
	if s == nil {
		return false
	}
	if s.Nullable {
		return true
	}
	v, err := matcher.Classify(s)
	if err != nil {
		return false
	}
	switch v {
	case matcher.Enum:
		return len(s.Enum) > 1
	case matcher.OneOf:
		arms := matcher.Arms(s)
		return len(arms) > 1 || rendersUnion(arms[0])
	case matcher.AllOf:
		return len(s.AllOf) == 1 && rendersUnion(s.AllOf[0])
	}
	return false
}

func parenthesize(f emit.Fragment) emit.Fragment {
	return emit.Text("(" + strings.TrimSpace(emit.String(f)) + ")")
}

// assigned renders a value following ":" or "=", separated by a space
// unless the value starts on its own line.
func assigned(f emit.Fragment) emit.Fragment {
	text := emit.String(f)
	if strings.HasPrefix(text, "\n") {
		return emit.Text(strings.TrimSuffix(text, "\n"))
	}
	return emit.Text(" " + text)
}

// docComment renders a JSDoc comment line, or nothing for an empty string.
func docComment(doc string) emit.Fragment {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return emit.Text("")
	}
	doc = strings.ReplaceAll(doc, "*/", "*\\/")
	if !strings.Contains(doc, "\n") {
		return emit.Textf("/** %s */\n", doc)
	}
	return func(ctx emit.Context) {
		ctx.WriteLine("/**")
		for _, line := range strings.Split(doc, "\n") {
			ctx.WriteLine(strings.TrimRight(" * "+line, " "))
		}
		ctx.WriteLine(" */")
	}
}

// typeExpression renders s as a TypeScript type.
func typeExpression(s *parser.Schema, path string) (emit.Fragment, error) {
	return matcher.Walk[emit.Fragment](s, path, tsType{})
}
