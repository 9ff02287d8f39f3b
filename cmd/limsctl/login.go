package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/terryfox-lims/limsclient/pkg/session"
)

func newLoginCmd(c *cli) *cobra.Command {
	var passwordFile string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and store the access token",
		Long: `Sign in with a username and password. The password is prompted for on the
terminal unless --password-file is given ("-" reads it from stdin).

If a valid session already exists nothing is changed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := c.app.mgr
			mgr.ClearError()

			if st := mgr.State(); st.IsAuthenticated() {
				fmt.Fprintf(c.stdout, "Already logged in as %s\n", st.User.Username)
				return nil
			}

			in := bufio.NewReader(c.stdin)
			username := ""
			if len(args) == 1 {
				username = strings.TrimSpace(args[0])
			}
			if username == "" {
				fmt.Fprint(c.stderr, "Username: ")
				line, err := in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("reading username: %w", err)
				}
				username = strings.TrimSpace(line)
			}

			password, err := readPassword(passwordFile, in, c.stderr)
			if err != nil {
				return err
			}

			if err := mgr.Login(cmd.Context(), username, password); err != nil {
				var lerr *session.LoginError
				if errors.As(err, &lerr) {
					return errors.New(lerr.Message)
				}
				return err
			}

			user := mgr.State().User
			fmt.Fprintf(c.stdout, "Logged in as %s (%s)\n", user.DisplayName(), user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&passwordFile, "password-file", "", `read the password from a file ("-" for stdin)`)
	return cmd
}

// readPassword reads from path, from stdin for "-", or prompts on the terminal.
// Trailing newlines are stripped.
func readPassword(path string, stdin *bufio.Reader, prompt io.Writer) (string, error) {
	switch path {
	case "":
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", errors.New("no terminal available for the password prompt (use --password-file)")
		}
		fmt.Fprint(prompt, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	case "-":
		line, err := stdin.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	default:
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}
}
