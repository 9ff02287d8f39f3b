package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.requireSession()
			if err != nil {
				return err
			}
			user, err := a.mgr.CurrentUser()
			if err != nil {
				return err
			}

			return render(c.stdout, c.flags.output, user, func(w io.Writer) error {
				fmt.Fprintf(w, "Username:   %s\n", user.Username)
				fmt.Fprintf(w, "Name:       %s\n", user.DisplayName())
				if user.Email != "" {
					fmt.Fprintf(w, "Email:      %s\n", user.Email)
				}
				fmt.Fprintf(w, "Groups:     %s\n", joinOrNone(user.Groups))
				fmt.Fprintf(w, "Roles:      %s\n", joinOrNone(user.Roles()))
				fmt.Fprintf(w, "Can edit:   %t\n", user.CanEdit())
				if user.IsSuperuser {
					fmt.Fprintln(w, "Superuser:  true")
				}
				return nil
			})
		},
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
