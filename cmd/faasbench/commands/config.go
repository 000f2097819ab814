package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the deployment configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Resolve and print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := globalOptions(cmd)
			opts.Region, _ = cmd.Flags().GetString("region")
			return c.app.ShowConfig(cmd.Context(), opts)
		},
	}
	show.Flags().String("region", "", "Override the provider region")

	cmd.AddCommand(show)
	return cmd
}
