// Package compile handles the report compilation command
package compile

import (
	"fmt"

	"arac/ar-rollforward/cmd/common"
	"arac/ar-rollforward/cmd/root"
	"arac/ar-rollforward/internal/logging"

	"github.com/spf13/cobra"
)

var (
	output string
	format string
)

// Cmd represents the compile command
var Cmd = &cobra.Command{
	Use:   "compile [extract...]",
	Short: "Compile the roll-forward report",
	Long: `Load every extract, reconcile each account, apportion the reserve and write
the classified roll-forward report. Directories contribute every .csv and
.xlsx file they contain. Nothing is written if any account fails to reconcile.`,
	RunE: compileFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: timestamped file in report.output_directory)")
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: xlsx, csv or parquet")
}

func compileFunc(cmd *cobra.Command, args []string) error {
	cfg, err := root.GetConfig()
	if err != nil {
		return err
	}

	inputs, err := common.ResolveInputs(root.SharedFlags.Inputs, args, cfg)
	if err != nil {
		return err
	}
	resolved, err := common.ResolveFormat(output, format, cfg)
	if err != nil {
		return err
	}
	if resolved != cfg.Report.Format {
		cfg.Report.Format = resolved
		root.AppContainer = nil
	}

	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	root.Log.Info("Compiling roll-forward",
		logging.F(logging.FieldCount, len(inputs)),
		logging.F(logging.FieldMode, cfg.Report.Mode),
		logging.F(logging.FieldFormat, resolved))

	res, err := c.GetCompiler().Compile(cmd.Context(), inputs, output)
	if err != nil {
		common.PrintFailure(cmd.ErrOrStderr(), err)
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d accounts to %s\n", res.Meta.Accounts, res.Output)
	return err
}
