package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/sasspipe/internal/app"
)

func (c *CLI) newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <bundle-route>",
		Short: "Print the cache key of a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.app.Key(cmd.Context(), app.KeyOptions{Config: c.config, Route: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
