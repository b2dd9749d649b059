package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/bizdesk/internal/format"
	"github.com/roach88/bizdesk/internal/model"
	"github.com/roach88/bizdesk/internal/store"
)

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage user accounts",
	}

	cmd.AddCommand(newUserListCommand(rootOpts))
	cmd.AddCommand(newUserAddCommand(rootOpts))
	cmd.AddCommand(newUserUpdateCommand(rootOpts))
	cmd.AddCommand(newUserDeleteCommand(rootOpts))

	return cmd
}

// redacted hides the password of every user before output.
func redacted(users ...model.User) []model.User {
	out := make([]model.User, len(users))
	for i, u := range users {
		u.Password = store.RedactedPassword
		out[i] = u
	}
	return out
}

// findUser resolves an id or a username.
func findUser(a *app, ref string) *model.User {
	if u := a.store.User(ref); u != nil {
		return u
	}
	return a.store.UserByUsername(ref)
}

func newUserListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List user accounts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "users.view", func(a *app) error {
				users := redacted(a.store.Users()...)
				return a.out.Render(users, func(w io.Writer) {
					writeUsers(w, users)
				})
			})
		},
	}
}

func writeUsers(w io.Writer, users []model.User) {
	rows := make([][]string, len(users))
	for i, u := range users {
		status := "active"
		if !u.Active {
			status = "inactive"
		}
		lastLogin := "-"
		if u.LastLogin != nil {
			lastLogin = format.DateTime(u.LastLogin.Format(time.RFC3339))
		}
		rows[i] = []string{u.ID, u.Username, u.FullName, string(u.Profile), status, lastLogin}
	}
	writeTable(w, []string{"ID", "USERNAME", "NAME", "PROFILE", "STATUS", "LAST LOGIN"}, rows)
}

// UserOptions holds the field flags shared by user add and update.
type UserOptions struct {
	*RootOptions
	Input  model.UserInput
	Active bool
}

func addUserFlags(cmd *cobra.Command, in *model.UserInput) {
	cmd.Flags().StringVar(&in.Username, "username", "", "login name, unique ignoring case")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	cmd.Flags().StringVar(&in.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "e-mail address")
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserOptions{RootOptions: rootOpts}
	var profile string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user account",
		Long: `Create an active user account.

Example:
  bizdesk user add --username joana --password s3cret --name "Joana Lima" \
    --email joana@example.com --profile manager`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input.Profile = model.Profile(profile)
			return runUserAdd(opts, cmd)
		},
	}

	addUserFlags(cmd, &opts.Input)
	cmd.Flags().StringVar(&profile, "profile", string(model.ProfileOperator), "admin|manager|operator")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runUserAdd(opts *UserOptions, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "users.create", func(a *app) error {
		in := opts.Input
		in.FullName = format.Sanitize(in.FullName)
		if err := a.validator.User(in, a.store, "", true); err != nil {
			return a.invalid(err)
		}
		u := a.store.AddUser(in)
		return a.done(redacted(*u)[0], func(w io.Writer) {
			fmt.Fprintf(w, "Created user %s (%s)\n", u.Username, u.ID)
		})
	})
}

func newUserUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserOptions{RootOptions: rootOpts}
	var profile string

	cmd := &cobra.Command{
		Use:   "update <id|username>",
		Short: "Change a user account",
		Long: `Change the given fields of a user account. An empty --password keeps
the current one.

Example:
  bizdesk user update joana --profile operator
  bizdesk user update joana --active=false`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input.Profile = model.Profile(profile)
			return runUserUpdate(opts, args[0], cmd)
		},
	}

	addUserFlags(cmd, &opts.Input)
	cmd.Flags().StringVar(&profile, "profile", "", "admin|manager|operator")
	cmd.Flags().BoolVar(&opts.Active, "active", true, "whether the account may log in")

	return cmd
}

func runUserUpdate(opts *UserOptions, ref string, cmd *cobra.Command) error {
	return withApp(opts.RootOptions, cmd, "users.edit", func(a *app) error {
		existing := findUser(a, ref)
		if existing == nil {
			return a.notFound("user", ref)
		}

		in := opts.Input
		changed := cmd.Flags().Changed
		var patch model.UserPatch
		if changed("username") {
			patch.Username = &in.Username
		}
		if changed("password") {
			patch.Password = &in.Password
		}
		if changed("name") {
			name := format.Sanitize(in.FullName)
			patch.FullName = &name
		}
		if changed("email") {
			patch.Email = &in.Email
		}
		if changed("profile") {
			patch.Profile = &in.Profile
		}
		if changed("active") {
			patch.Active = &opts.Active
		}

		candidate := *existing
		patch.Apply(&candidate)
		if err := a.validator.User(candidate.Input(), a.store, existing.ID, false); err != nil {
			return a.invalid(err)
		}

		u := a.store.UpdateUser(existing.ID, patch)
		return a.done(redacted(*u)[0], func(w io.Writer) {
			fmt.Fprintf(w, "Updated user %s (%s)\n", u.Username, u.ID)
		})
	})
}

func newUserDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|username>",
		Short: "Delete a user account",
		Long: `Delete a user account. The logged-in user and the last remaining
account cannot be deleted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(rootOpts, cmd, "users.delete", func(a *app) error {
				u := findUser(a, args[0])
				if u == nil {
					return a.notFound("user", args[0])
				}
				deleted, err := a.store.DeleteUser(u.ID)
				if err != nil {
					return a.fail(ErrCodeValidation, ExitFailure, "user not deleted", err)
				}
				if !deleted {
					return a.notFound("user", args[0])
				}
				return a.done(map[string]string{"deleted": u.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted user %s (%s)\n", u.Username, u.ID)
				})
			})
		},
	}
}
