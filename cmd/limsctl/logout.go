package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.mgr.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("removing stored token: %w", err)
			}
			fmt.Fprintln(c.stdout, "Logged out")
			return nil
		},
	}
}
