package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sasspipe/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web root, compiling bundles on request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), app.ServeOptions{Config: c.config, Addr: addr})
		},
	}
	cmd.Flags().StringP("addr", "a", app.DefaultAddr, "Address to listen on")
	return cmd
}
