package commands

import (
	"strings"

	"github.com/erraggy/oasts/internal/naming"
	"github.com/erraggy/oasts/operations"
	"github.com/spf13/cobra"
)

// OperationsFlags contains flags for the operations command
type OperationsFlags struct {
	Format string
	Quiet  bool
}

// operationRecord is the structured output form of an operation.
type operationRecord struct {
	OperationID  string   `json:"operationId" yaml:"operationId"`
	ClientMethod string   `json:"clientMethod" yaml:"clientMethod"`
	Method       string   `json:"method" yaml:"method"`
	Path         string   `json:"path" yaml:"path"`
	PathParams   []string `json:"pathParams,omitempty" yaml:"pathParams,omitempty"`
	QueryParams  []string `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	BodyType     string   `json:"bodyType,omitempty" yaml:"bodyType,omitempty"`
	SuccessType  string   `json:"successType,omitempty" yaml:"successType,omitempty"`
	WebSocket    bool     `json:"websocket,omitempty" yaml:"websocket,omitempty"`
	Deprecated   bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

func newOperationsCmd(root *rootOptions) *cobra.Command {
	flags := &OperationsFlags{}
	cmd := &cobra.Command{
		Use:   "operations [flags] <file|->",
		Short: "List the operations the generated client exposes",
		Long: "List every operation with an operationId, in the order the generated\n" +
			"client declares them, with its parameters and body and response types.",
		Example: "  oasts operations openapi.yaml\n" +
			"  oasts operations --format json openapi.yaml",
		Args: cobra.ExactArgs(1),
		PreRunE: func(*cobra.Command, []string) error {
			return ValidateOutputFormat(flags.Format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseSpec(args[0], cmd.InOrStdin(), root.logger)
			if err != nil {
				return err
			}
			ops, err := operations.Extract(parsed.Document, root.logger)
			if err != nil {
				return err
			}
			records := make([]operationRecord, 0, len(ops))
			for _, op := range ops {
				records = append(records, newOperationRecord(op))
			}
			if flags.Format != FormatText {
				return OutputStructured(cmd.OutOrStdout(), records, flags.Format)
			}
			writeOperationTable(cmd, records, flags.Quiet)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.Format, "format", "f", FormatText, "output format: text, json, or yaml")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "omit the header and separate text columns with tabs")
	return cmd
}

func newOperationRecord(op operations.Operation) operationRecord {
	r := operationRecord{
		OperationID:  op.OperationID,
		ClientMethod: naming.SnakeToCamel(op.OperationID),
		Method:       strings.ToUpper(op.Method),
		Path:         op.Path,
		BodyType:     op.BodyType,
		SuccessType:  op.SuccessType,
		WebSocket:    op.WebSocket,
		Deprecated:   op.Deprecated,
	}
	for _, p := range op.PathParams {
		r.PathParams = append(r.PathParams, p.Name)
	}
	for _, p := range op.QueryParams {
		r.QueryParams = append(r.QueryParams, p.Name)
	}
	return r
}

func writeOperationTable(cmd *cobra.Command, records []operationRecord, quiet bool) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		method := r.Method
		if r.WebSocket {
			method = "WS"
		}
		rows = append(rows, []string{method, r.Path, r.ClientMethod, dash(r.BodyType), dash(r.SuccessType)})
	}
	RenderSummaryTable(cmd.OutOrStdout(), []string{"METHOD", "PATH", "CLIENT METHOD", "BODY", "RESPONSE"}, rows, quiet)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
