package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/sasspipe/internal/app"
)

func (c *CLI) newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <file>",
		Short: "List the stylesheets a file imports, directly or transitively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := c.app.Graph(cmd.Context(), app.GraphOptions{Config: c.config, File: args[0]})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, route := range routes {
				_, _ = fmt.Fprintln(out, route)
			}
			return nil
		},
	}
}
