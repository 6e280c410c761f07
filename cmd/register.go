// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an EventsOps account",
	Long: `The register command creates an account. It does not sign you in; run
'eventsops login' afterwards.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		p := terminal.NewPrompter()
		form := forms.RegisterForm{Name: registerName, Email: registerEmail, Password: registerPassword}
		if form.Name == "" {
			if form.Name, err = p.Line("Name: "); err != nil {
				return err
			}
		}
		if form.Email == "" {
			if form.Email, err = p.Line("Email: "); err != nil {
				return err
			}
		}
		if form.Password == "" {
			if form.Password, err = p.Password("Password: "); err != nil {
				return err
			}
		}
		if err := form.Validate(); err != nil {
			return sh.fail(err, "registering", "")
		}

		u, err := sh.session.Register(ctx, form.Name, form.Email, form.Password)
		if err != nil {
			return sh.fail(err, "registering", "Registration failed. Please try again.")
		}
		pterm.Success.Printf("Account created for %s\n", u.Email)
		pterm.Println("   Run 'eventsops login' to sign in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password, at least 8 characters (prompted when omitted)")
}
