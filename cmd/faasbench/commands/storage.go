package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/faasbench/internal/app"
)

func (c *CLI) newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage benchmark buckets",
	}

	prepare := &cobra.Command{
		Use:   "prepare",
		Short: "Create the buckets of a benchmark and upload its input data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := storageOptions(cmd)
			opts.Inputs, _ = cmd.Flags().GetInt("inputs")
			opts.Outputs, _ = cmd.Flags().GetInt("outputs")
			opts.DataDir, _ = cmd.Flags().GetString("data")
			return c.app.PrepareStorage(cmd.Context(), opts)
		},
	}
	prepare.Flags().StringP("benchmark", "b", "", "Benchmark name")
	prepare.Flags().Int("inputs", 1, "Number of input buckets")
	prepare.Flags().Int("outputs", 1, "Number of output buckets")
	prepare.Flags().StringP("data", "d", "", "Directory uploaded to the first input bucket")
	prepare.Flags().Bool("ignore-cache", false, "Ignore cached buckets and upload again")

	clean := &cobra.Command{
		Use:   "clean",
		Short: "Empty the cached buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CleanStorage(cmd.Context(), storageOptions(cmd))
		},
	}
	clean.Flags().StringP("benchmark", "b", "", "Only clean the buckets of this benchmark")

	cmd.AddCommand(prepare, clean)
	return cmd
}

func storageOptions(cmd *cobra.Command) app.StorageOptions {
	opts := app.StorageOptions{Options: globalOptions(cmd)}
	opts.Benchmark, _ = cmd.Flags().GetString("benchmark")
	opts.IgnoreCache, _ = cmd.Flags().GetBool("ignore-cache")
	return opts
}
