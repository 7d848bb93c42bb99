package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type checkInput struct {
	Spec   specInput `json:"spec"   jsonschema:"The OpenAPI document declaring the schema"`
	Schema string    `json:"schema" jsonschema:"Name of the component schema to check against"`
	Value  string    `json:"value"  jsonschema:"The value to check, as JSON text"`
}

type checkIssue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type checkOutput struct {
	Valid  bool         `json:"valid"`
	Schema string       `json:"schema"`
	Issues []checkIssue `json:"issues,omitempty"`
	// Value is the checked value with defaults applied, set when valid
	Value any `json:"value,omitempty"`
}

func handleCheck(_ context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	if input.Schema == "" {
		return errResult(fmt.Errorf("schema is required")), checkOutput{}, nil
	}
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}
	set, err := validate.Compile(parseResult.Document)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}
	if !set.Has(input.Schema) {
		return errResult(fmt.Errorf("no component schema named %q", input.Schema)), checkOutput{}, nil
	}

	output := checkOutput{Schema: input.Schema}
	value, err := set.ValidateJSON(input.Schema, []byte(input.Value))
	var verr *oaserrors.ValidationError
	switch {
	case err == nil:
		output.Valid = true
		output.Value = value
	case errors.As(err, &verr):
		output.Issues = makeSlice[checkIssue](len(verr.Issues))
		for _, i := range verr.Issues {
			output.Issues = append(output.Issues, checkIssue{Path: i.Path, Code: i.Code, Message: i.Message})
		}
	default:
		return errResult(err), checkOutput{}, nil
	}
	return nil, output, nil
}
