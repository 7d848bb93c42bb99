package refs

import (
	"testing"

	"github.com/erraggy/oasts/parser"
	"github.com/stretchr/testify/assert"
)

func TestToName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "#/components/schemas/Widget", want: "Widget"},
		{ref: "#/definitions/Widget", want: "Widget"},
		{ref: "#/components/schemas/a~1b~0c", want: "a/b~c"},
		{ref: "other.yaml#/Thing", want: "Thing"},
		{ref: "Bare", want: "Bare"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, ToName(tt.ref))
		})
	}
	assert.Equal(t, "Widget", ToName(SchemaRef("Widget")))
}

func TestDependencies(t *testing.T) {
	ref := func(name string) *parser.Schema { return &parser.Schema{Ref: SchemaRef(name)} }

	s := &parser.Schema{
		Type: "object",
		Properties: []parser.Property{
			{Name: "a", Schema: ref("A")},
			{Name: "list", Schema: &parser.Schema{Type: "array", Items: ref("B")}},
			{Name: "again", Schema: ref("A")},
		},
		AdditionalProperties: ref("C"),
		OneOf:                []*parser.Schema{ref("D"), {AllOf: []*parser.Schema{ref("E")}}},
	}
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, Dependencies(s))
	assert.Empty(t, Dependencies(&parser.Schema{Type: "string"}))
	assert.Empty(t, Dependencies(nil))
}
