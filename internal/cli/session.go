package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/auth"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Start a session",
		Long: `Start a session as the given user.

The username ignores case; the password does not. Every attempt,
successful or not, is written to the audit log.

Example:
  bizdesk login admin --password admin`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func runLogin(opts *LoginOptions, username string, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "", func(a *app) error {
		result := a.store.Login(username, opts.Password)
		if !result.Success {
			return a.fail(ErrCodeLoginFailed, ExitFailure, result.Message, nil)
		}
		return a.done(result, func(w io.Writer) {
			fmt.Fprintf(w, "Logged in as %s (%s)\n", result.Session.FullName, result.Session.Profile)
		})
	})
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         "End the current session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "", func(a *app) error {
				wasLoggedIn := a.store.IsLoggedIn()
				a.store.Logout()
				return a.done(map[string]bool{"loggedOut": wasLoggedIn}, func(w io.Writer) {
					if wasLoggedIn {
						fmt.Fprintln(w, "Logged out")
					} else {
						fmt.Fprintln(w, "Not logged in")
					}
				})
			})
		},
	}
}

// whoamiResult is the session plus its granted capabilities.
type whoamiResult struct {
	*auth.Session
	Capabilities []string `json:"capabilities"`
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "whoami",
		Short:         "Show the logged-in user and their capabilities",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "dashboard", func(a *app) error {
				session := a.store.CurrentUser()
				var granted []string
				for _, c := range auth.Capabilities() {
					if session.Has(c) {
						granted = append(granted, c)
					}
				}
				result := whoamiResult{Session: session, Capabilities: granted}
				return a.out.Render(result, func(w io.Writer) {
					writeFields(w,
						"User", session.Username,
						"Name", session.FullName,
						"Email", session.Email,
						"Profile", string(session.Profile),
						"Capabilities", strings.Join(granted, " "),
					)
				})
			})
		},
	}
}
