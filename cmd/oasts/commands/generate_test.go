package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		files []string
	}{
		{
			name:  "defaults",
			files: []string{"types.ts", "validate.ts", "Api.ts"},
		},
		{
			name:  "everything",
			flags: []string{"--mock-handlers", "--type-tests"},
			files: []string{"types.ts", "validate.ts", "Api.ts", "msw-handlers.ts", "type-test.ts"},
		},
		{
			name:  "types only",
			flags: []string{"--validators=false", "--client=false"},
			files: []string{"types.ts"},
		},
		{
			name:  "mock handlers force validators",
			flags: []string{"--validators=false", "--client=false", "--mock-handlers"},
			files: []string{"types.ts", "validate.ts", "msw-handlers.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"generate", "-o", dir}, tt.flags...)
			out, _, err := runCLI(t, nil, append(args, widgetsFixture)...)
			require.NoError(t, err)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			var got []string
			for _, e := range entries {
				got = append(got, e.Name())
			}
			assert.ElementsMatch(t, tt.files, got)
			for _, f := range tt.files {
				assert.Contains(t, out, "  "+f+" (")
			}
			assert.Contains(t, out, "(6 schemas, 5 operations)")
		})
	}
}

func TestGenerateFromStdin(t *testing.T) {
	src, err := os.ReadFile(widgetsFixture)
	require.NoError(t, err)

	dir := t.TempDir()
	out, _, err := runCLI(t, strings.NewReader(string(src)), "generate", "-o", dir, "--client=false", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "from <stdin>")

	types, err := os.ReadFile(filepath.Join(dir, "types.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(types), "export interface Widget {")
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing output", args: []string{"generate", widgetsFixture}, want: `required flag(s) "output" not set`},
		{name: "missing input", args: []string{"generate", "-o", "x"}, want: "accepts 1 arg(s)"},
		{name: "unreadable input", args: []string{"generate", "-o", "x", "does-not-exist.yaml"}, want: "parsing does-not-exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
