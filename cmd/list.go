package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ghostscan.dev/pkg/ghostscan/internal/domain"
	m "ghostscan.dev/pkg/ghostscan/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the modules a scan would invoke",
		Long:  listLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signalContext(cmd)
			defer stop()

			return workflow.List(ctx, domain.ListArgs{
				Root:   m.Path(viper.GetString(rootConfigKey)),
				Python: viper.GetString(pythonConfigKey),
				Skip:   viper.GetStringSlice(skipConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
