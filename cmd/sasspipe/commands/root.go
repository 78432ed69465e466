// Package commands implements the CLI commands for sasspipe.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sasspipe/internal/app"
	"go.trai.ch/sasspipe/internal/build"
	"go.trai.ch/sasspipe/internal/core/domain"
)

// CLI represents the command line interface for sasspipe.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	config  string
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Key(ctx context.Context, opts app.KeyOptions) (domain.CacheKey, error)
	Graph(ctx context.Context, opts app.GraphOptions) ([]domain.SourceRoute, error)
	Serve(ctx context.Context, opts app.ServeOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sasspipe",
		Short:         "Compile, fingerprint and serve Sass stylesheet bundles",
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

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.config, "config", "c", "",
		"Path to "+domain.ConfigFileName+" or a directory to search upwards from")

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newKeyCmd())
	rootCmd.AddCommand(c.newGraphCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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
