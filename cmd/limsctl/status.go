package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/terryfox-lims/limsclient/pkg/identity"
)

type statusReport struct {
	APIURL        string     `json:"api_url" yaml:"api_url"`
	Backend       string     `json:"credential_backend" yaml:"credential_backend"`
	Authenticated bool       `json:"authenticated" yaml:"authenticated"`
	Username      string     `json:"username,omitempty" yaml:"username,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Problem       string     `json:"problem,omitempty" yaml:"problem,omitempty"`
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored and still accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			st := a.mgr.State()

			report := statusReport{
				APIURL:        a.api.BaseURL(),
				Backend:       a.cfg.Credential.Backend,
				Authenticated: st.IsAuthenticated(),
			}
			if st.User != nil {
				report.Username = st.User.Username
			}
			if exp, ok := identity.TokenExpiry(st.Token); ok {
				report.ExpiresAt = &exp
			}
			if a.bootstrapErr != nil {
				report.Problem = "saved session was rejected and has been removed"
			}

			return render(c.stdout, c.flags.output, report, func(w io.Writer) error {
				fmt.Fprintf(w, "API:        %s\n", report.APIURL)
				fmt.Fprintf(w, "Storage:    %s\n", report.Backend)
				if !report.Authenticated {
					fmt.Fprintln(w, "Session:    not logged in")
				} else {
					fmt.Fprintf(w, "Session:    logged in as %s\n", report.Username)
				}
				if report.ExpiresAt != nil {
					fmt.Fprintf(w, "Expires:    %s (%s)\n", report.ExpiresAt.Local().Format(time.RFC1123), expiresIn(*report.ExpiresAt))
				}
				if report.Problem != "" {
					fmt.Fprintf(w, "Note:       %s\n", report.Problem)
				}
				return nil
			})
		},
	}
}

func expiresIn(t time.Time) string {
	d := time.Until(t).Round(time.Minute)
	if d <= 0 {
		return "expired"
	}
	return "in " + d.String()
}
