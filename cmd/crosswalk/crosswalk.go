// Package crosswalk handles the command that shows the active header mapping
package crosswalk

import (
	"fmt"

	"arac/ar-rollforward/cmd/root"

	"github.com/spf13/cobra"
)

var asYAML bool

// Cmd represents the crosswalk command
var Cmd = &cobra.Command{
	Use:   "crosswalk",
	Short: "Print the active header crosswalk",
	Long: `Print the logical field to source header mapping that the loader will use.
The output is a valid crosswalk file and can be edited and passed back with
--crosswalk.`,
	Args: cobra.NoArgs,
	RunE: crosswalkFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the crosswalk as YAML")
}

func crosswalkFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cw := c.GetCrosswalk()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# source: %s\n", cw.Source())
	if asYAML {
		return cw.WriteYAML(out)
	}
	return cw.WriteText(out)
}
