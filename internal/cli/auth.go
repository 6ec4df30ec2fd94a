package cli

import (
	"errors"
	"fmt"

	"github.com/shenikar/citizen_report/internal/models"
	"github.com/spf13/cobra"
)

func newLoginCommand(st *state) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a WordPress username and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := st.app.Auth.Login(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, models.ErrNetworkUnavailable) {
					return fmt.Errorf("server unreachable, check your connection")
				}
				if errors.Is(err, models.ErrInvalidCredentials) {
					return models.ErrInvalidCredentials
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", displayName(&session.User), session.Credential.Scheme)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "WordPress username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "WordPress password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear all locally stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st.app.Incidents.Reset()
			if err := st.app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(st *state) *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			user := st.app.Auth.CurrentUser()
			if user == nil {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "%s <%s> (id %d)\n", displayName(user), user.Email, user.ID)

			if validate {
				ok, err := st.app.Auth.Validate(cmd.Context())
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintln(out, "Token is valid")
				} else {
					fmt.Fprintln(out, "Token was rejected by the server, log in again")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "check the stored token against the server")
	return cmd
}

func displayName(user *models.UserProfile) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	return user.Username
}
