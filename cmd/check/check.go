// Package check handles the reconcile-only command
package check

import (
	"fmt"

	"arac/ar-rollforward/cmd/common"
	"arac/ar-rollforward/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check [extract...]",
	Short: "Reconcile extracts without writing a report",
	Long: `Load every extract and run the balance and reserve roll-forward checks.
The first account that does not reconcile is reported with its ledger.`,
	RunE: checkFunc,
}

func checkFunc(cmd *cobra.Command, args []string) error {
	cfg, err := root.GetConfig()
	if err != nil {
		return err
	}
	inputs, err := common.ResolveInputs(root.SharedFlags.Inputs, args, cfg)
	if err != nil {
		return err
	}

	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	meta, err := c.GetCompiler().Check(cmd.Context(), inputs)
	if err != nil {
		common.PrintFailure(cmd.ErrOrStderr(), err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "All %d accounts reconcile\n", meta.Accounts)
	if meta.Facility != "" {
		fmt.Fprintf(out, "Facility: %s\n", meta.Facility)
	}
	if period := meta.Period(); period != "" {
		fmt.Fprintf(out, "Period:   %s\n", period)
	}
	fmt.Fprintf(out, "Files:    %d\n", len(meta.SourceFiles))
	return nil
}
