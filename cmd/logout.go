// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"eventsops/cli/internal/auth"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd clears the stored session. It never fails, even when nobody is
// signed in.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token and profile",
	Long: `The logout command removes the access token and cached profile from the OS
keychain. It always succeeds, including when no session is stored.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}

		out := sh.session.Logout()
		pterm.Success.Println("Logged out. All stored credentials have been removed")
		if out.Navigate == auth.RouteLogin {
			pterm.Println("   Run 'eventsops login' to sign in again.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
