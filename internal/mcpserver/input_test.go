package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetsFixture = "../../testdata/widgets.yaml"

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	result, err := specInput{File: widgetsFixture}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, "Widget API", result.Document.Info.Title)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	content := `openapi: "3.0.0"
info:
  title: Test
  version: "1.0"
paths: {}
`
	result, err := specInput{Content: content}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", result.Version)
}

func TestSpecInput_ResolveRequiresExactlyOne(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
	}{
		{"none", specInput{}},
		{"both", specInput{File: "foo.yaml", Content: "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
		})
	}
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve()
	assert.Error(t, err)
	assert.Zero(t, specCache.size())
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	saved := cfg.MaxInlineSize
	t.Cleanup(func() { cfg.MaxInlineSize = saved })
	cfg.MaxInlineSize = 16

	_, err := specInput{Content: strings.Repeat("a", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: widgetsFixture}

	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: \"3.0.0\"\ninfo:\n  title: Test V1\n  version: \"1.0\"\n"), 0o644))

	input := specInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Test V1", result1.Document.Info.Title)

	require.NoError(t, os.WriteFile(path, []byte("openapi: \"3.0.0\"\ninfo:\n  title: Test V2\n  version: \"2.0\"\n"), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "Test V2", result2.Document.Info.Title)
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()

	var firstKey string
	for i := range 11 {
		content := "openapi: \"3.0.0\"\ninfo:\n  title: \"Spec " + string(rune('A'+i)) + "\"\n  version: \"1.0\"\n"
		if i == 0 {
			firstKey = makeCacheKey(specInput{Content: content})
		}
		_, err := specInput{Content: content}.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, 10, specCache.size())
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSpecCache_Sweep(t *testing.T) {
	specCache.reset()
	specCache.put("stale", nil, -time.Second)
	specCache.put("fresh", nil, time.Hour)

	specCache.sweep()
	assert.Equal(t, 1, specCache.size())

	ctx, cancel := context.WithCancel(context.Background())
	specCache.startSweeper(ctx, time.Hour)
	assert.True(t, specCache.sweeperStarted.Load())
	cancel()
	assert.Eventually(t, func() bool { return !specCache.sweeperStarted.Load() }, time.Second, 10*time.Millisecond)
}
