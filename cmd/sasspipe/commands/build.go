package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sasspipe/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [bundle-routes...]",
		Short: "Compile bundles into the output directory",
		Long: "Compile the configured bundles into the output directory. Bundles whose imports, " +
			"sources and options are unchanged since the last build are skipped.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			jobs, _ := cmd.Flags().GetInt("jobs")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Config:  c.config,
				Routes:  args,
				NoCache: noCache,
				Jobs:    jobs,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Rebuild every bundle, ignoring build records")
	cmd.Flags().IntP("jobs", "j", 0, "Number of bundles compiled in parallel (default: number of CPUs)")
	return cmd
}
