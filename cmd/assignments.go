// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/dashboard"
	"eventsops/cli/internal/forms"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var assignmentForm forms.AssignmentForm

var assignmentsCmd = &cobra.Command{
	Use:     "assignments",
	Aliases: []string{"staff"},
	Short:   "Manage staff assignments of an event",
}

var assignmentsListCmd = &cobra.Command{
	Use:     "list <event-id>",
	Aliases: []string{"ls"},
	Short:   "List staff assigned to an event",
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

		list, err := sh.assignments.List(ctx, args[0])
		if err != nil {
			return sh.fail(err, "loading assignments", "Failed to load assignments")
		}
		if len(list) == 0 {
			pterm.Info.Println("No staff assigned yet.")
			return nil
		}
		rows := [][]string{{"ID", "Staff", "Role", "Assigned"}}
		for _, a := range list {
			rows = append(rows, []string{a.ID, staffLabel(a.User, a.UserID), a.RoleName, dashboard.FormatDate(a.CreatedAt)})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

var assignmentsAddCmd = &cobra.Command{
	Use:   "add <event-id>",
	Short: "Assign a staff member to an event",
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

		if assignmentForm.UserID == "" {
			if assignmentForm.UserID, err = pickUser(cmd, sh); err != nil {
				return err
			}
		}
		_, notice, err := sh.assignments.Add(ctx, args[0], assignmentForm)
		return sh.mutated(notice, err, "assigning staff")
	},
}

var assignmentsRemoveCmd = &cobra.Command{
	Use:     "remove <event-id> <assignment-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a staff assignment",
	Args:    cobra.ExactArgs(2),
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

		notice, err := sh.assignments.Remove(ctx, args[0], args[1])
		return sh.mutated(notice, err, "removing the assignment")
	},
}

func staffLabel(u *backend.UserRef, id string) string {
	switch {
	case u == nil:
		return id
	case u.Name != "":
		return u.Name + " <" + u.Email + ">"
	default:
		return u.Email
	}
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
	assignmentsCmd.AddCommand(assignmentsListCmd, assignmentsAddCmd, assignmentsRemoveCmd)

	assignmentsAddCmd.Flags().StringVar(&assignmentForm.UserID, "user", "", "User ID (picked interactively when omitted)")
	assignmentsAddCmd.Flags().StringVar(&assignmentForm.RoleName, "role", "", "Role name, e.g. Security")
}
