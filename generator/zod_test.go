package generator

import (
	"testing"

	"github.com/erraggy/oasts/emit"
	"github.com/erraggy/oasts/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func zodText(t *testing.T, s *parser.Schema) string {
	t.Helper()
	f, err := validatorExpression(s, "S", map[string]int{"Early": 0, "Late": 2}, 1, false)
	require.NoError(t, err)
	return emit.String(f)
}

// URL parameters arrive as strings, so parameter validators coerce numbers
// while body validators stay strict.
func TestZodParamCoercion(t *testing.T) {
	tests := []struct {
		name   string
		schema *parser.Schema
		coerce string
		strict string
	}{
		{name: "integer", schema: &parser.Schema{Type: "integer", Format: "uint32"}, coerce: "z.coerce.number().int().min(0).max(4294967295)", strict: "z.number().int().min(0).max(4294967295)"},
		{name: "number", schema: &parser.Schema{Type: "number", Maximum: ptr(1.5)}, coerce: "z.coerce.number().max(1.5)", strict: "z.number().max(1.5)"},
		{name: "nullable integer", schema: &parser.Schema{Type: "integer", Nullable: true}, coerce: "z.coerce.number().int().nullable()", strict: "z.number().int().nullable()"},
		{name: "string untouched", schema: &parser.Schema{Type: "string", Format: "uuid"}, coerce: "z.string().uuid()", strict: "z.string().uuid()"},
		{name: "boolean untouched", schema: &parser.Schema{Type: "boolean"}, coerce: "SafeBoolean", strict: "SafeBoolean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := validatorExpression(tt.schema, "P", nil, 0, true)
			require.NoError(t, err)
			assert.Equal(t, tt.coerce, emit.String(f))
			assert.Equal(t, tt.strict, zodText(t, tt.schema))
		})
	}
}

func TestZodExpressions(t *testing.T) {
	tests := []struct {
		name   string
		schema *parser.Schema
		want   string
	}{
		{name: "uint8", schema: &parser.Schema{Type: "integer", Format: "uint8"}, want: "z.number().int().min(0).max(255)"},
		{name: "int16", schema: &parser.Schema{Type: "integer", Format: "int16"}, want: "z.number().int().min(-32767).max(32767)"},
		{name: "plain integer", schema: &parser.Schema{Type: "integer"}, want: "z.number().int()"},
		{name: "number bounds", schema: &parser.Schema{Type: "number", Minimum: ptr(0.5), Maximum: ptr(10.0)}, want: "z.number().min(0.5).max(10)"},
		{name: "uuid", schema: &parser.Schema{Type: "string", Format: "uuid"}, want: "z.string().uuid()"},
		{name: "ip", schema: &parser.Schema{Type: "string", Format: "ip"}, want: "z.string().ip()"},
		{name: "ipv4", schema: &parser.Schema{Type: "string", Format: "ipv4"}, want: `z.string().ip({ version: "v4" })`},
		{name: "ipv6", schema: &parser.Schema{Type: "string", Format: "ipv6"}, want: `z.string().ip({ version: "v6" })`},
		{name: "email", schema: &parser.Schema{Type: "string", Format: "email"}, want: "z.string().email()"},
		{name: "pattern with slash", schema: &parser.Schema{Type: "string", Pattern: `^a/b\/c$`}, want: `z.string().regex(/^a\/b\/c$/)`},
		{name: "date-time", schema: &parser.Schema{Type: "string", Format: "date-time"}, want: "z.coerce.date()"},
		{name: "boolean", schema: &parser.Schema{Type: "boolean"}, want: "SafeBoolean"},
		{name: "string enum", schema: &parser.Schema{Type: "string", Enum: []any{"a", "b"}}, want: `z.enum(["a", "b"])`},
		{name: "integer enum", schema: &parser.Schema{Type: "integer", Enum: []any{1, 2}}, want: "IntEnum([1, 2] as const)"},
		{name: "boolean enum", schema: &parser.Schema{Enum: []any{true}}, want: "z.literal(true)"},
		{name: "mixed enum", schema: &parser.Schema{Enum: []any{"a", 1}}, want: `z.union([z.literal("a"), z.literal(1)])`},
		{name: "array", schema: &parser.Schema{Type: "array", Items: &parser.Schema{Type: "string"}, MinItems: ptr(1), MaxItems: ptr(3)}, want: "z.array(z.string()).min(1).max(3)"},
		{name: "unique array", schema: &parser.Schema{Type: "array", Items: &parser.Schema{Type: "integer"}, UniqueItems: true}, want: `z.array(z.number().int()).refine(uniqueItems, { message: "Items must be unique" })`},
		{name: "map", schema: &parser.Schema{Type: "object", AdditionalProperties: &parser.Schema{Type: "number"}}, want: "z.record(z.string(), z.number())"},
		{name: "free-form object", schema: &parser.Schema{Type: "object"}, want: "z.record(z.string(), z.unknown())"},
		{name: "empty", schema: &parser.Schema{Description: "anything"}, want: "z.unknown()"},
		{name: "nullable", schema: &parser.Schema{Type: "string", Nullable: true}, want: "z.string().nullable()"},
		{name: "earlier reference", schema: &parser.Schema{Ref: "#/components/schemas/Early"}, want: "Early"},
		{name: "later reference is lazy", schema: &parser.Schema{Ref: "#/components/schemas/Late"}, want: "z.lazy(() => Late)"},
		{name: "unknown reference", schema: &parser.Schema{Ref: "#/components/schemas/Other"}, want: "Other"},
		{name: "renamed reference", schema: &parser.Schema{Ref: "#/components/schemas/Date"}, want: "DateValue"},
		{name: "single arm", schema: &parser.Schema{OneOf: []*parser.Schema{{Type: "string"}}}, want: "z.string()"},
		{name: "single member", schema: &parser.Schema{AllOf: []*parser.Schema{{Ref: "#/components/schemas/Early"}}}, want: "Early"},
		{
			name:   "intersection folds left",
			schema: &parser.Schema{AllOf: []*parser.Schema{{Type: "string"}, {Type: "number"}, {Type: "boolean"}}},
			want:   "z.intersection(z.intersection(z.string(), z.number()), SafeBoolean)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zodText(t, tt.schema))
		})
	}
}

func TestZodEnumFlattening(t *testing.T) {
	single := func(v string) *parser.Schema { return &parser.Schema{Type: "string", Enum: []any{v}} }

	t.Run("single member arms flatten", func(t *testing.T) {
		s := &parser.Schema{OneOf: []*parser.Schema{single("a"), single("b"), single("c")}}
		assert.Equal(t, `z.enum(["a", "b", "c"])`, zodText(t, s))
	})

	t.Run("anyOf flattens too", func(t *testing.T) {
		s := &parser.Schema{AnyOf: []*parser.Schema{single("a"), single("b")}}
		assert.Equal(t, `z.enum(["a", "b"])`, zodText(t, s))
	})

	t.Run("a two member arm blocks flattening", func(t *testing.T) {
		s := &parser.Schema{OneOf: []*parser.Schema{
			single("a"),
			{Type: "string", Enum: []any{"b", "c"}},
		}}
		assert.Equal(t, "z.union([\n  z.enum([\"a\"]),\n  z.enum([\"b\", \"c\"]),\n])", zodText(t, s))
	})

	t.Run("a non-string arm blocks flattening", func(t *testing.T) {
		s := &parser.Schema{OneOf: []*parser.Schema{single("a"), {Type: "integer", Enum: []any{1}}}}
		assert.Equal(t, "z.union([\n  z.enum([\"a\"]),\n  IntEnum([1] as const),\n])", zodText(t, s))
	})

	t.Run("nullable union", func(t *testing.T) {
		s := &parser.Schema{Nullable: true, OneOf: []*parser.Schema{single("a"), single("b")}}
		assert.Equal(t, `z.enum(["a", "b"]).nullable()`, zodText(t, s))
	})
}

func TestZodObjectPresence(t *testing.T) {
	s := &parser.Schema{
		Type: "object",
		Properties: []parser.Property{
			{Name: "required_no_default", Schema: &parser.Schema{Type: "string"}},
			{Name: "required_with_default", Schema: &parser.Schema{Type: "string", Default: "x"}},
			{Name: "optional_with_default", Schema: &parser.Schema{Type: "boolean", Default: false}},
			{Name: "optional", Schema: &parser.Schema{Type: "integer"}},
			{Name: "list_default", Schema: &parser.Schema{Type: "array", Items: &parser.Schema{Type: "string"}, Default: []any{"a"}}},
		},
		Required: []string{"required_no_default", "required_with_default"},
	}
	assert.Equal(t, `z.object({
  requiredNoDefault: z.string(),
  requiredWithDefault: z.string().default("x"),
  optionalWithDefault: SafeBoolean.default(false),
  optional: z.number().int().optional(),
  listDefault: z.array(z.string()).default(["a"]),
})`, zodText(t, s))
}

func TestZodNestedObjectIndentation(t *testing.T) {
	s := &parser.Schema{
		Type: "object",
		Properties: []parser.Property{
			{Name: "inner", Schema: &parser.Schema{
				Type:       "object",
				Properties: []parser.Property{{Name: "a_b", Schema: &parser.Schema{Type: "string"}}},
				Required:   []string{"a_b"},
			}},
		},
	}
	assert.Equal(t, `z.object({
  inner: z.object({
    aB: z.string(),
  }).optional(),
})`, zodText(t, s))
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{in: "a<b", want: `"a<b"`},
		{in: 4, want: "4"},
		{in: 1.5, want: "1.5"},
		{in: true, want: "true"},
		{in: nil, want: "null"},
		{in: []any{"a", 1}, want: `["a",1]`},
		{in: map[string]any{"b": 1, "a": 2}, want: `{"a":2,"b":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := literal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZod64BitIntegers(t *testing.T) {
	tests := []struct {
		name   string
		schema *parser.Schema
		want   string
	}{
		{name: "int64", schema: &parser.Schema{Type: "integer", Format: "int64"}, want: "z.number().int()"},
		{name: "uint64", schema: &parser.Schema{Type: "integer", Format: "uint64"}, want: "z.number().int().min(0)"},
		{name: "int64 with maximum", schema: &parser.Schema{Type: "integer", Format: "int64", Maximum: ptr(10.0)}, want: "z.number().int().max(10)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, zodText(t, tt.schema))
		})
	}
}
