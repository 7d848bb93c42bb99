package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single word", input: "widget", want: "widget"},
		{name: "two words", input: "time_created", want: "timeCreated"},
		{name: "three words", input: "get_user_by_id", want: "getUserById"},
		{name: "first segment untouched", input: "Widget_list", want: "WidgetList"},
		{name: "double underscore", input: "double__under", want: "doubleUnder"},
		{name: "trailing underscore", input: "value_", want: "value"},
		{name: "digits", input: "api_v2_client", want: "apiV2Client"},
		{name: "hyphen is not a separator", input: "api-client", want: "api-client"},
		{name: "unicode", input: "über_user", want: "überUser"},
		{name: "global name kept", input: "Date", want: "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeToCamel(tt.input), "SnakeToCamel(%q)", tt.input)
		})
	}
}

func TestSnakeToPascal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "single word", input: "widget", want: "Widget"},
		{name: "snake case", input: "widget_create", want: "WidgetCreate"},
		{name: "already pascal", input: "WidgetCreate", want: "WidgetCreate"},
		{name: "leading underscore", input: "_private", want: "Private"},
		{name: "digit segment", input: "ipv4_2nd", want: "Ipv42nd"},
		{name: "unicode", input: "über_user", want: "ÜberUser"},
		{name: "global name kept", input: "record", want: "Record"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeToPascal(tt.input), "SnakeToPascal(%q)", tt.input)
		})
	}
}

func TestPascalToCamel(t *testing.T) {
	assert.Equal(t, "", PascalToCamel(""))
	assert.Equal(t, "widgetCreate", PascalToCamel("WidgetCreate"))
	assert.Equal(t, "x", PascalToCamel("X"))
	assert.Equal(t, "überUser", PascalToCamel("ÜberUser"))
}

func TestNamingRoundTrip(t *testing.T) {
	inputs := []string{
		"a", "widget", "widget_create", "time_created", "instance_network_interface_list",
		"v1_ip_pool_range_add", "x_2", "ssh_key", "über_user",
		"date", "record", "promise", "due_date",
	}
	for _, x := range inputs {
		t.Run(x, func(t *testing.T) {
			assert.Equal(t, SnakeToCamel(x), PascalToCamel(SnakeToPascal(x)))
		})
	}
}

// A leading capital is not snake_case: SnakeToCamel keeps the first segment
// as the runtime camelify does, so the round trip only differs in that rune.
func TestNamingRoundTripLeadingCapital(t *testing.T) {
	tests := []struct {
		input     string
		camel     string
		roundTrip string
	}{
		{input: "Date", camel: "Date", roundTrip: "date"},
		{input: "Record", camel: "Record", roundTrip: "record"},
		{input: "Promise_all", camel: "PromiseAll", roundTrip: "promiseAll"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.camel, SnakeToCamel(tt.input))
			assert.Equal(t, tt.roundTrip, PascalToCamel(SnakeToPascal(tt.input)))
			assert.Equal(t, PascalToCamel(SnakeToCamel(tt.input)), PascalToCamel(SnakeToPascal(tt.input)))
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Widget", want: "Widget"},
		{input: "widget_kind", want: "WidgetKind"},
		{input: "widget-kind.v2", want: "WidgetKindV2"},
		{input: "2fa_setting", want: "T2faSetting"},
		{input: "Date", want: "DateValue"},
		{input: "date", want: "DateValue"},
		{input: "record", want: "RecordValue"},
		{input: "Promise", want: "PromiseValue"},
		{input: "date_range", want: "DateRange"},
		{input: "", want: "T"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeName(tt.input))
		})
	}
}

func TestPropertyName(t *testing.T) {
	assert.Equal(t, "timeCreated", PropertyName("time_created"))
	assert.Equal(t, "$schema", PropertyName("$schema"))
	assert.Equal(t, `"content-type"`, PropertyName("content-type"))
	assert.Equal(t, `"1st"`, PropertyName("1st"))
}

func TestPropertyNameKeepsGlobals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Date", want: "Date"},
		{input: "date", want: "date"},
		{input: "Record", want: "Record"},
		{input: "Promise", want: "Promise"},
		{input: "due_date", want: "dueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyName(tt.input))
			assert.Equal(t, tt.want, SnakeToCamel(tt.input))
		})
	}
}
