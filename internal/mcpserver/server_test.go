package mcpserver

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{name: "default limit returns all when under 100", items: items, want: []int{0, 1, 2, 3, 4}},
		{name: "explicit limit", items: items, limit: 2, want: []int{0, 1}},
		{name: "offset only", items: items, offset: 2, want: []int{2, 3, 4}},
		{name: "offset and limit", items: items, offset: 1, limit: 2, want: []int{1, 2}},
		{name: "offset at end", items: items, offset: 4, limit: 2, want: []int{4}},
		{name: "offset beyond end", items: items, offset: 5, limit: 2, want: nil},
		{name: "negative offset", items: items, offset: -1, limit: 2, want: nil},
		{name: "limit exceeds remaining", items: items, offset: 3, limit: 10, want: []int{3, 4}},
		{name: "nil slice", items: nil, limit: 2, want: nil},
		{name: "negative limit treated as default", items: items, limit: -1, want: []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_OverflowLimit(t *testing.T) {
	assert.Equal(t, []int{1, 2}, paginate([]int{0, 1, 2}, 1, math.MaxInt))
}

func TestPaginate_MaxLimitCap(t *testing.T) {
	items := make([]int, 1500)
	got := paginate(items, 0, 1500)
	assert.Len(t, got, cfg.MaxLimit, "limit should be capped at MaxLimit")
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error returns empty string", err: nil, want: ""},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("failed to open /home/user/secret/api.yaml: no such file"),
			want: "failed to open <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("invalid JSON at line 5"),
			want: "invalid JSON at line 5",
		},
		{
			name: "strips multiple paths",
			err:  fmt.Errorf("write /tmp/a.ts and /tmp/b.ts failed"),
			want: "write <path> and <path> failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestGroupAndSort(t *testing.T) {
	items := [][]string{{"a"}, {"b", "a"}, {"c"}, {"b"}}
	got := groupAndSort(items, func(keys []string) []string { return keys })
	assert.Equal(t, []groupCount{{"a", 2}, {"b", 2}, {"c", 1}}, got)
}

func TestValidateGroupBy(t *testing.T) {
	allowed := []string{"tag", "method"}
	assert.NoError(t, validateGroupBy("", allowed))
	assert.NoError(t, validateGroupBy("TAG", allowed))
	err := validateGroupBy("path", allowed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid values: tag, method")
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"", "/v1/widgets", true},
		{"/v1/widgets", "/v1/widgets", true},
		{"/v1/*", "/v1/widgets", true},
		{"/v1/*", "/v1/widgets/{widget_id}", false},
		{"/v1/*/*", "/v1/widgets/{widget_id}", true},
		{"/v2/*", "/v1/widgets", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPath(tt.pattern, tt.path), "%s ~ %s", tt.pattern, tt.path)
	}
	assert.Error(t, validateGlobPattern("/v1/["))
	assert.NoError(t, validateGlobPattern("/v1/*"))
}
