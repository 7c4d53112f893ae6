package cmd

import (
	"github.com/spf13/cobra"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run the generator against every module and list unexpected failures",
		Long:  scanLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(cmd)
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
