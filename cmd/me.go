// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"time"

	"eventsops/cli/internal/auth"
	"eventsops/cli/internal/guard"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var refreshMe bool

// meCmd shows the signed-in account once the stored session was confirmed by
// the backend.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"whoami"},
	Short:   "Show the signed-in account",
	Long: `The me command restores the stored session, confirms it with the backend and
shows the account it belongs to. An expired session is removed and you are
asked to sign in again.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		defer sh.settle()
		ctx := cmd.Context()

		if err := sh.protect(ctx); err != nil {
			return err
		}
		snap, err := guard.Wait(ctx, sh.session)
		if err != nil {
			return err
		}
		if guard.Protect(snap).Action == guard.Redirect {
			return sh.navigate(auth.Outcome{Navigate: auth.RouteLogin})
		}

		user := *snap.User
		if refreshMe {
			if user, err = sh.session.RefreshUser(ctx); err != nil {
				return sh.fail(err, "refreshing your profile", "Failed to load your profile")
			}
		}

		rows := [][]string{
			{"Name", orDash(user.Name)},
			{"Email", user.Email},
			{"Role", orDash(user.Role)},
			{"ID", user.ID},
			{"API", sh.baseURL},
		}
		if exp, ok := auth.TokenExpiry(snap.Token); ok {
			rows = append(rows, []string{"Token expires", fmt.Sprintf("%s (in %s)", exp.Local().Format(time.RFC1123), time.Until(exp).Round(time.Minute))})
		}
		fmt.Println(getMePhrase(user.DisplayName()))
		return pterm.DefaultTable.WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	meCmd.Flags().BoolVar(&refreshMe, "refresh", false, "Fetch the profile again even if it was just confirmed")
}

// getMePhrase returns a friendly phrase with the user's identifier
func getMePhrase(identifier string) string {
	return fmt.Sprintf("👤 Current user: %s", identifier)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
