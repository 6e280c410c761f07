// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"eventsops/cli/internal/dashboard"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var checkInForm forms.CheckInForm

var checkinsCmd = &cobra.Command{
	Use:     "checkins",
	Aliases: []string{"checkin"},
	Short:   "List and record staff check-ins",
}

var checkinsListCmd = &cobra.Command{
	Use:     "list <event-id>",
	Aliases: []string{"ls"},
	Short:   "List check-ins of an event",
	Args:    cobra.ExactArgs(1),
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

		list, err := sh.checkIns.List(ctx, args[0])
		if err != nil {
			return sh.fail(err, "loading check-ins", "Failed to load check-ins")
		}
		if len(list) == 0 {
			pterm.Info.Println("Nobody has checked in yet.")
			return nil
		}
		rows := [][]string{{"ID", "Staff", "Checked in"}}
		for _, c := range list {
			rows = append(rows, []string{c.ID, staffLabel(c.User, c.UserID), dashboard.FormatDateTime(c.CheckedInAt)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

var checkinsAddCmd = &cobra.Command{
	Use:   "add <event-id>",
	Short: "Record a check-in",
	Args:  cobra.ExactArgs(1),
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

		if checkInForm.UserID == "" {
			if checkInForm.UserID, err = pickUser(cmd, sh); err != nil {
				return err
			}
		}
		_, notice, err := sh.checkIns.Record(ctx, args[0], checkInForm)
		return sh.mutated(notice, err, "recording the check-in")
	},
}

// pickUser lets the operator choose a user on a terminal. Off a terminal it
// returns an empty ID and leaves the complaint to form validation.
func pickUser(cmd *cobra.Command, sh *shell) (string, error) {
	if !terminal.NewPrompter().Interactive() {
		return "", nil
	}
	users, err := sh.users.List(cmd.Context())
	if err != nil {
		return "", sh.fail(err, "loading users", "Failed to load users")
	}
	if len(users) == 0 {
		return "", nil
	}
	options := make([]string, len(users))
	ids := make(map[string]string, len(users))
	for i, u := range users {
		options[i] = u.DisplayName() + " (" + u.Email + ")"
		ids[options[i]] = u.ID
	}
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).WithDefaultText("Select a user").Show()
	if err != nil {
		return "", err
	}
	return ids[choice], nil
}

func init() {
	rootCmd.AddCommand(checkinsCmd)
	checkinsCmd.AddCommand(checkinsListCmd, checkinsAddCmd)

	checkinsAddCmd.Flags().StringVar(&checkInForm.UserID, "user", "", "User ID (picked interactively when omitted)")
}
