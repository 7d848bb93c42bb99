package mcpserver

import (
	"context"
	"strings"

	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/operations"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type operationsInput struct {
	Spec      specInput `json:"spec"                jsonschema:"The OpenAPI document to list operations of"`
	Method    string    `json:"method,omitempty"    jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Path      string    `json:"path,omitempty"      jsonschema:"Filter by path pattern (* matches one segment)"`
	Tag       string    `json:"tag,omitempty"       jsonschema:"Filter by tag name"`
	WebSocket *bool     `json:"websocket,omitempty" jsonschema:"Only websocket (true) or only plain HTTP (false) operations"`
	GroupBy   string    `json:"group_by,omitempty"  jsonschema:"Group results and return counts. Values: tag\\, method"`
	Limit     int       `json:"limit,omitempty"     jsonschema:"Maximum number of results to return (default 100)"`
	Offset    int       `json:"offset,omitempty"    jsonschema:"Skip the first N results (for pagination)"`
}

type operationSummary struct {
	OperationID  string   `json:"operation_id"`
	ClientMethod string   `json:"client_method"`
	Method       string   `json:"method"`
	Path         string   `json:"path"`
	PathParams   []string `json:"path_params,omitempty"`
	QueryParams  []string `json:"query_params,omitempty"`
	BodyType     string   `json:"body_type,omitempty"`
	SuccessType  string   `json:"success_type,omitempty"`
	WebSocket    bool     `json:"websocket,omitempty"`
	Deprecated   bool     `json:"deprecated,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type operationsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
	Groups     []groupCount       `json:"groups,omitempty"`
}

func handleOperations(_ context.Context, _ *mcp.CallToolRequest, input operationsInput) (*mcp.CallToolResult, operationsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"tag", "method"}); err != nil {
		return errResult(err), operationsOutput{}, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}
	ops, err := operations.Extract(parseResult.Document, nil)
	if err != nil {
		return errResult(err), operationsOutput{}, nil
	}

	matched := filterOperations(ops, input)
	output := operationsOutput{Total: len(ops), Matched: len(matched)}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(op operations.Operation) []string {
			if strings.EqualFold(input.GroupBy, "method") {
				return []string{strings.ToUpper(op.Method)}
			}
			if len(op.Tags) == 0 {
				return []string{"(untagged)"}
			}
			return op.Tags
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	page := paginate(matched, input.Offset, input.Limit)
	output.Returned = len(page)
	output.Operations = makeSlice[operationSummary](len(page))
	for _, op := range page {
		output.Operations = append(output.Operations, summarizeOperation(op))
	}
	return nil, output, nil
}

func filterOperations(ops []operations.Operation, input operationsInput) []operations.Operation {
	var out []operations.Operation
	for _, op := range ops {
		if input.Method != "" && !strings.EqualFold(op.Method, input.Method) {
			continue
		}
		if !matchPath(input.Path, op.Path) {
			continue
		}
		if input.Tag != "" && !hasTag(op.Tags, input.Tag) {
			continue
		}
		if input.WebSocket != nil && op.WebSocket != *input.WebSocket {
			continue
		}
		out = append(out, op)
	}
	return out
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func summarizeOperation(op operations.Operation) operationSummary {
	s := operationSummary{
		OperationID:  op.OperationID,
		ClientMethod: naming.SnakeToCamel(op.OperationID),
		Method:       op.Method,
		Path:         op.Path,
		BodyType:     op.BodyType,
		SuccessType:  op.SuccessType,
		WebSocket:    op.WebSocket,
		Deprecated:   op.Deprecated,
		Tags:         op.Tags,
	}
	for _, p := range op.PathParams {
		s.PathParams = append(s.PathParams, p.Name)
	}
	for _, p := range op.QueryParams {
		s.QueryParams = append(s.QueryParams, p.Name)
	}
	return s
}
