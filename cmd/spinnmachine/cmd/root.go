// Package cmd provides the command-line interface for working with
// machine descriptions.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "spinnmachine",
	Short: "spinnmachine generates and inspects descriptions of SpiNNaker" +
		" machines.",
	Long: `spinnmachine generates virtual SpiNNaker machines for planning ` +
		`execution without hardware, and inspects machine descriptions ` +
		`stored as JSON.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
