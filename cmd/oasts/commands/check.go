package commands

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasts/oaserrors"
	"github.com/erraggy/oasts/validate"
	"github.com/spf13/cobra"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Quiet bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	flags := &CheckFlags{}
	cmd := &cobra.Command{
		Use:   "check [flags] <file> <schema> <value.json|->",
		Short: "Check a JSON value against a component schema",
		Long: "Check a JSON value against a named component schema using the same rules\n" +
			"as the generated zod validators. On success the value is printed with\n" +
			"defaults applied and undeclared properties removed.",
		Example: "  oasts check openapi.yaml Widget widget.json\n" +
			"  echo '{\"id\": 1}' | oasts check openapi.yaml Widget -",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			specPath, schema, valuePath := args[0], args[1], args[2]
			if specPath == StdinFilePath && valuePath == StdinFilePath {
				return fmt.Errorf("the document and the value cannot both be read from stdin")
			}

			parsed, err := parseSpec(specPath, cmd.InOrStdin(), root.logger)
			if err != nil {
				return err
			}
			set, err := validate.Compile(parsed.Document)
			if err != nil {
				return err
			}
			data, err := readValue(valuePath, cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading value: %w", err)
			}

			value, err := set.ValidateJSON(schema, data)
			var verr *oaserrors.ValidationError
			if errors.As(err, &verr) {
				for _, issue := range verr.Issues {
					Writef(cmd.ErrOrStderr(), "  %s\n", issue)
				}
				return fmt.Errorf("value does not satisfy %s: %d issue(s)", schema, len(verr.Issues))
			}
			if err != nil {
				return err
			}
			if flags.Quiet {
				return nil
			}
			return OutputStructured(cmd.OutOrStdout(), value, FormatJSON)
		},
	}
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "print nothing on success")
	return cmd
}
