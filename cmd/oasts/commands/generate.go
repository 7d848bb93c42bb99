package commands

import (
	"fmt"

	"github.com/erraggy/oasts/generator"
	"github.com/spf13/cobra"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output       string
	Validators   bool
	MockHandlers bool
	TypeTests    bool
	Client       bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	flags := &GenerateFlags{}
	cmd := &cobra.Command{
		Use:   "generate [flags] <file|->",
		Short: "Generate TypeScript from an OpenAPI document",
		Long: "Generate types.ts, and unless disabled validate.ts and Api.ts, from an\n" +
			"OpenAPI 3.x document. Use - to read the document from stdin.",
		Example: "  oasts generate -o ./src/api openapi.yaml\n" +
			"  oasts generate -o ./src/api --mock-handlers --type-tests openapi.yaml\n" +
			"  cat openapi.json | oasts generate -o ./src/api --client=false -",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, flags, args[0])
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output directory for generated files (required)")
	cmd.Flags().BoolVar(&flags.Validators, "validators", true, "generate validate.ts (zod)")
	cmd.Flags().BoolVar(&flags.MockHandlers, "mock-handlers", false, "generate msw-handlers.ts (implies --validators)")
	cmd.Flags().BoolVar(&flags.TypeTests, "type-tests", false, "generate type-test.ts")
	cmd.Flags().BoolVar(&flags.Client, "client", true, "generate Api.ts")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, flags *GenerateFlags, specPath string) error {
	parsed, err := parseSpec(specPath, cmd.InOrStdin(), root.logger)
	if err != nil {
		return err
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(*parsed),
		generator.WithValidators(flags.Validators),
		generator.WithMockHandlers(flags.MockHandlers),
		generator.WithTypeTests(flags.TypeTests),
		generator.WithClient(flags.Client),
		generator.WithLogger(root.logger),
	)
	if err != nil {
		return err
	}
	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing generated files: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Files {
		Writef(out, "  %s (%d bytes)\n", f.Name, len(f.Content))
	}
	Writef(out, "Generated %d files in %s from %s (%d schemas, %d operations) in %v\n",
		len(result.Files), flags.Output, FormatSpecPath(specPath),
		result.SchemaCount, result.OperationCount, result.GenerateTime)
	return nil
}
