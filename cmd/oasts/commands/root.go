package commands

import (
	"github.com/erraggy/oasts"
	"github.com/erraggy/oasts/parser"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	Verbose bool

	logger parser.Logger
}

// NewRootCmd builds the oasts command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{logger: parser.NopLogger{}}

	root := &cobra.Command{
		Use:   "oasts",
		Short: "Generate TypeScript types, zod validators and API clients from OpenAPI",
		Long: "oasts reads an OpenAPI 3.x document and generates TypeScript:\n\n" +
			"  types.ts          type declarations for every component schema\n" +
			"  validate.ts       zod validators agreeing with the types\n" +
			"  Api.ts            a fetch based API client\n" +
			"  msw-handlers.ts   typed mock handlers (--mock-handlers)\n" +
			"  type-test.ts      compile-time agreement checks (--type-tests)\n\n" +
			"Examples:\n" +
			"  oasts generate -o src/api openapi.yaml\n" +
			"  oasts operations --format json openapi.yaml\n" +
			"  oasts check openapi.yaml Widget widget.json\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.Version = oasts.Version()
	root.SetVersionTemplate("oasts v{{.Version}}\n")

	root.AddCommand(
		newGenerateCmd(opts),
		newOperationsCmd(opts),
		newCheckCmd(opts),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}
