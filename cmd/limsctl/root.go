package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/terryfox-lims/limsclient/pkg/requestid"
)

// cli carries flags and the lazily built app between cobra hooks and commands.
type cli struct {
	flags  globalFlags
	app    *app
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// run executes limsctl with args and releases the session resources afterwards.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	root := newRootCmd(c)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if cerr := c.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "limsctl",
		Short: "Sign in to the sample-tracking API and inspect the session",
		Long: `limsctl manages the session used to call the sample-tracking API.

The access token is stored in a single credential slot (a file under the user
config directory by default) and reused by later invocations until it is
rejected by the server or removed with "limsctl logout".

Configuration is read from LIMS_* environment variables and optional .env files.

Examples:
  limsctl login alice
  limsctl whoami -o yaml
  limsctl status
  limsctl logout`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(c.flags.output); err != nil {
				return err
			}
			ctx, _ := requestid.WithNew(cmd.Context())
			cmd.SetContext(ctx)

			a, err := newApp(ctx, c.flags, c.stderr)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.apiURL, "api-url", "", "API base URL (overrides LIMS_API_URL)")
	pf.StringVarP(&c.flags.output, "output", "o", outputText, "output format: text, json or yaml")
	pf.StringSliceVar(&c.flags.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "log requests and session events to stderr")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newStatusCmd(c),
	)
	return root
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// errNotLoggedIn is returned by commands that need an authenticated session.
var errNotLoggedIn = errors.New(`not logged in; run "limsctl login"`)

// requireSession returns the app if a user profile is loaded.
func (c *cli) requireSession() (*app, error) {
	if c.app.mgr.State().IsAuthenticated() {
		return c.app, nil
	}
	if c.app.bootstrapErr != nil {
		return nil, fmt.Errorf("saved session is no longer valid: %w", errNotLoggedIn)
	}
	return nil, errNotLoggedIn
}
