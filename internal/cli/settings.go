package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run login first")

func newSettingsCommand(st *state) *cobra.Command {
	var notifications, autoRefresh bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change client settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings, err := st.app.Preferences.Settings(ctx)
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("notifications") {
				settings.Notifications = notifications
				changed = true
			}
			if cmd.Flags().Changed("auto-refresh") {
				settings.AutoRefresh = autoRefresh
				changed = true
			}
			if changed {
				if err := st.app.Preferences.SaveSettings(ctx, settings); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "notifications: %t\n", settings.Notifications)
			fmt.Fprintf(out, "auto-refresh:  %t\n", settings.AutoRefresh)
			return nil
		},
	}
	cmd.Flags().BoolVar(&notifications, "notifications", true, "enable new incident notifications")
	cmd.Flags().BoolVar(&autoRefresh, "auto-refresh", true, "refresh the incident list automatically")
	return cmd
}

func newRegisterPushCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "register-push <registration-id>",
		Short: "Store the push notification registration id of this device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.app.Preferences.RegisterPush(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Push registration saved")
			return nil
		},
	}
}
