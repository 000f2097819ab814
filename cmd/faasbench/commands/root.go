// Package commands implements the CLI commands for faasbench.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/faasbench/internal/app"
	"go.trai.ch/faasbench/internal/build"
)

// CLI represents the command line interface for faasbench.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SetJSON(enable bool)
	Deploy(ctx context.Context, opts app.DeployOptions) error
	Invoke(ctx context.Context, opts app.InvokeOptions) error
	ShowConfig(ctx context.Context, opts app.Options) error
	PrepareStorage(ctx context.Context, opts app.StorageOptions) error
	CleanStorage(ctx context.Context, opts app.StorageOptions) error
	CleanCache(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "faasbench",
		Short:         "Deploy and invoke serverless benchmarks across FaaS platforms",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Configuration file (default faasbench.yaml)")
	rootCmd.PersistentFlags().String("cache", "", "Cache directory (default .faasbench/cache)")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs and reports as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
			c.app.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newDeployCmd())
	rootCmd.AddCommand(c.newInvokeCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newStorageCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// globalOptions reads the persistent flags shared by every command.
func globalOptions(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	cacheDir, _ := cmd.Flags().GetString("cache")
	return app.Options{
		ConfigPath: configPath,
		CacheDir:   cacheDir,
	}
}
