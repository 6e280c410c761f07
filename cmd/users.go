// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"eventsops/cli/internal/dashboard"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	RunE:  listUsers,
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List user accounts",
	RunE:    listUsers,
}

func listUsers(cmd *cobra.Command, args []string) error {
	sh, err := newShell(cmd)
	if err != nil {
		return err
	}
	defer sh.settle()
	ctx := cmd.Context()
	if err := sh.protect(ctx); err != nil {
		return err
	}

	users, err := sh.users.List(ctx)
	if err != nil {
		return sh.fail(err, "loading users", "Failed to load users")
	}
	rows := [][]string{{"ID", "Name", "Email", "Role", "Joined"}}
	for _, u := range users {
		rows = append(rows, []string{u.ID, orDash(u.Name), u.Email, orDash(u.Role), dashboard.FormatDate(u.CreatedAt)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
}
