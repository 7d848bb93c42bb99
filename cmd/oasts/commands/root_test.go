package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsFixture = "../../../testdata/widgets.yaml"

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errBuf.String(), err
}

func TestRootCommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "operations", "check", "mcp", "version"})
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "oasts v"))

	out, _, err = runCLI(t, nil, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "oasts v"))
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, nil, "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{FormatText, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateOutputFormat(f))
	}
	err := ValidateOutputFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Valid formats: text, json, yaml")
}

func TestOutputStructured(t *testing.T) {
	data := map[string]any{"name": "widget"}

	var buf bytes.Buffer
	require.NoError(t, OutputStructured(&buf, data, FormatJSON))
	assert.Equal(t, "{\n  \"name\": \"widget\"\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputStructured(&buf, data, FormatYAML))
	assert.Equal(t, "name: widget\n\n", buf.String())

	assert.Error(t, OutputStructured(&buf, data, FormatText))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := runCLI(t, nil, "--verbose", "operations", widgetsFixture)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "skipping operation without operationId")

	_, stderr, err = runCLI(t, nil, "operations", widgetsFixture)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}
