package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasts/generator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The OpenAPI document to generate TypeScript from"`
	OutputDir    string    `json:"output_dir,omitempty"    jsonschema:"Directory to write generated files to. When empty the file contents are returned inline"`
	Validators   *bool     `json:"validators,omitempty"    jsonschema:"Generate validate.ts with zod schemas (default true)"`
	Client       *bool     `json:"client,omitempty"        jsonschema:"Generate the Api.ts client (default from OASTS_CLIENT)"`
	MockHandlers *bool     `json:"mock_handlers,omitempty" jsonschema:"Generate msw-handlers.ts; implies validators (default from OASTS_MOCK_HANDLERS)"`
	TypeTests    *bool     `json:"type_tests,omitempty"    jsonschema:"Generate type-test.ts (default from OASTS_TYPE_TESTS)"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	OutputDir      string              `json:"output_dir,omitempty"`
	FileCount      int                 `json:"file_count"`
	Files          []generatedFileInfo `json:"files"`
	SchemaCount    int                 `json:"schema_count"`
	OperationCount int                 `json:"operation_count"`
	Order          []string            `json:"order,omitempty"`
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(*parseResult),
		generator.WithValidators(boolOr(input.Validators, true)),
		generator.WithClient(boolOr(input.Client, cfg.Client)),
		generator.WithMockHandlers(boolOr(input.MockHandlers, cfg.MockHandlers)),
		generator.WithTypeTests(boolOr(input.TypeTests, cfg.TypeTests)),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	inline := input.OutputDir == ""
	if !inline {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		OutputDir:      input.OutputDir,
		FileCount:      len(result.Files),
		SchemaCount:    result.SchemaCount,
		OperationCount: result.OperationCount,
		Order:          result.Order,
	}
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if inline {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}
	return nil, output, nil
}
