package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operationIDs(ops []operationSummary) []string {
	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		ids = append(ids, op.OperationID)
	}
	return ids
}

func TestOperationsTool_Filters(t *testing.T) {
	tests := []struct {
		name  string
		input operationsInput
		want  []string
	}{
		{
			name:  "all",
			input: operationsInput{},
			want:  []string{"widget_list", "widget_create", "widget_view", "widget_delete", "widget_events"},
		},
		{
			name:  "method",
			input: operationsInput{Method: "GET"},
			want:  []string{"widget_list", "widget_view", "widget_events"},
		},
		{
			name:  "path glob",
			input: operationsInput{Path: "/v1/widgets/*"},
			want:  []string{"widget_view", "widget_delete"},
		},
		{
			name:  "websocket only",
			input: operationsInput{WebSocket: ptrTo(true)},
			want:  []string{"widget_events"},
		},
		{
			name:  "plain http only",
			input: operationsInput{WebSocket: ptrTo(false), Method: "post"},
			want:  []string{"widget_create"},
		},
		{
			name:  "paginated",
			input: operationsInput{Offset: 1, Limit: 2},
			want:  []string{"widget_create", "widget_view"},
		},
		{
			name:  "unknown tag",
			input: operationsInput{Tag: "gadgets"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Spec = specInput{File: widgetsFixture}
			result, output, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			assert.Nil(t, result)
			assert.Equal(t, 5, output.Total)
			assert.Equal(t, tt.want, operationIDs(output.Operations))
			assert.Equal(t, len(tt.want), output.Returned)
		})
	}
}

func TestOperationsTool_Summary(t *testing.T) {
	_, output, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{
		Spec:   specInput{File: widgetsFixture},
		Method: "get",
		Path:   "/v1/widgets",
	})
	require.NoError(t, err)
	require.Len(t, output.Operations, 1)
	assert.Equal(t, operationSummary{
		OperationID:  "widget_list",
		ClientMethod: "widgetList",
		Method:       "get",
		Path:         "/v1/widgets",
		QueryParams:  []string{"limit", "page_token"},
		SuccessType:  "WidgetResultsPage",
	}, output.Operations[0])
}

func TestOperationsTool_GroupBy(t *testing.T) {
	_, output, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{
		Spec:    specInput{File: widgetsFixture},
		GroupBy: "method",
	})
	require.NoError(t, err)
	assert.Empty(t, output.Operations)
	assert.Equal(t, []groupCount{{"GET", 3}, {"DELETE", 1}, {"POST", 1}}, output.Groups)

	_, output, err = handleOperations(context.Background(), &mcp.CallToolRequest{}, operationsInput{
		Spec:    specInput{File: widgetsFixture},
		GroupBy: "tag",
	})
	require.NoError(t, err)
	assert.Equal(t, []groupCount{{"(untagged)", 5}}, output.Groups)
}

func TestOperationsTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input operationsInput
	}{
		{name: "bad group_by", input: operationsInput{Spec: specInput{File: widgetsFixture}, GroupBy: "path"}},
		{name: "bad glob", input: operationsInput{Spec: specInput{File: widgetsFixture}, Path: "/v1/["}},
		{name: "missing spec", input: operationsInput{}},
		{
			name: "unresolved parameter",
			input: operationsInput{Spec: specInput{Content: `openapi: 3.0.0
paths:
  /a:
    get:
      operationId: a_get
      parameters:
        - $ref: "#/components/parameters/Missing"
      responses: {}
`}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleOperations(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
