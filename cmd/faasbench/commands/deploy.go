package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/faasbench/internal/app"
	"go.trai.ch/faasbench/internal/core/domain"
)

func (c *CLI) newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Package a benchmark and deploy it as a function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := deployOptions(cmd)
			opts.Watch, _ = cmd.Flags().GetBool("watch")
			return c.app.Deploy(cmd.Context(), opts)
		},
	}
	addDeployFlags(cmd)
	cmd.Flags().BoolP("watch", "w", false, "Redeploy whenever the source directory changes")
	return cmd
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("benchmark", "b", "", "Benchmark name, e.g. 110.dynamic-html")
	cmd.Flags().StringP("source", "s", "", "Directory holding the benchmark sources")
	cmd.Flags().StringP("language", "l", domain.LanguagePython.String(), "Benchmark language: python or nodejs")
	cmd.Flags().String("language-version", "3.9", "Language version")
	cmd.Flags().String("name", "", "Function name (default <benchmark>-<language>-<memory>)")
	cmd.Flags().Int("memory", 0, "Function memory in MB (default from configuration)")
	cmd.Flags().Int("timeout", 0, "Function timeout in seconds (default from configuration)")
	cmd.Flags().String("trigger", domain.TriggerHTTP.String(), "Trigger type: HTTP or Library")
	cmd.Flags().String("region", "", "Override the provider region")
	cmd.Flags().String("build-dir", "", "Directory code packages are staged in (default .faasbench/build)")
	cmd.Flags().Bool("ignore-cache", false, "Ignore cached functions and storage")
}

func deployOptions(cmd *cobra.Command) app.DeployOptions {
	opts := app.DeployOptions{Options: globalOptions(cmd)}
	opts.Region, _ = cmd.Flags().GetString("region")
	opts.BuildDir, _ = cmd.Flags().GetString("build-dir")
	opts.IgnoreCache, _ = cmd.Flags().GetBool("ignore-cache")

	opts.Benchmark, _ = cmd.Flags().GetString("benchmark")
	opts.SourceDir, _ = cmd.Flags().GetString("source")
	language, _ := cmd.Flags().GetString("language")
	opts.Language = domain.Language(language)
	opts.LanguageVersion, _ = cmd.Flags().GetString("language-version")
	opts.Name, _ = cmd.Flags().GetString("name")
	opts.MemoryMB, _ = cmd.Flags().GetInt("memory")
	opts.TimeoutSec, _ = cmd.Flags().GetInt("timeout")
	trigger, _ := cmd.Flags().GetString("trigger")
	opts.Trigger = domain.TriggerType(trigger)
	return opts
}
