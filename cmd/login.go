// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"eventsops/cli/internal/auth"
	"eventsops/cli/internal/backend"
	apperrors "eventsops/cli/internal/errors"
	"eventsops/cli/internal/forms"
	"eventsops/cli/internal/logging"
	"eventsops/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd signs the operator in with email and password and stores the
// access token and profile in the OS keychain.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Long: `The login command exchanges your email and password for an access token.
The token and your profile are stored in the OS keychain and used by every
other command until you run 'eventsops logout' or the token expires.

Missing values are prompted for; the password is read without echo. If you
are already signed in, the command tells you so and does nothing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		defer sh.settle()
		ctx := cmd.Context()

		redirected, err := sh.publicOnly(ctx)
		if err != nil || redirected {
			return err
		}

		p := terminal.NewPrompter()
		var asked []string
		form := forms.LoginForm{Email: loginEmail, Password: loginPassword}
		if form.Email == "" {
			if form.Email, err = p.Line("Email: "); err != nil {
				return err
			}
			asked = append(asked, "Email: "+form.Email)
		}
		if form.Password == "" {
			if form.Password, err = p.Password("Password: "); err != nil {
				return err
			}
			asked = append(asked, "Password: ")
		}
		if err := form.Validate(); err != nil {
			pterm.Error.Println(err.Error())
			return shown(err)
		}

		stop := startSpinner(os.Stdout, "Signing in")
		err = sh.session.Login(ctx, form.Email, form.Password)
		stop()
		if err != nil {
			return loginFailed(sh, err)
		}

		for i := len(asked) - 1; i >= 0; i-- {
			p.Erase(asked[i])
		}
		snap := sh.session.Snapshot()
		pterm.Success.Println("Login successful!")
		if snap.User != nil {
			fmt.Println(getRandomLoginGreeting(snap.User.DisplayName()))
		}
		return sh.navigate(auth.Outcome{Navigate: auth.RouteDashboard})
	},
}

// loginFailed reports a rejected login.
func loginFailed(sh *shell, err error) error {
	if rejected := loginRejection(err); rejected != nil {
		pterm.Error.Println(rejected.Message)
		return shown(rejected)
	}
	if apperrors.KindOf(err) == apperrors.Storage {
		fmt.Fprint(os.Stderr, logging.FormatError(err))
		return shown(err)
	}
	return sh.fail(err, "signing in", "Login failed. Please try again.")
}

// loginRejection maps a 401 on the login request to bad credentials. It is
// not an expired session, so the operator stays on the login screen. Other
// errors yield nil.
func loginRejection(err error) *apperrors.E {
	if !errors.Is(err, backend.ErrUnauthorized) {
		return nil
	}
	return apperrors.Wrap(apperrors.InvalidCredentials, backend.MessageOf(err, "Login failed. Please try again."), err)
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
}

// getRandomLoginGreeting returns a random greeting phrase with the user's identifier
func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s! Ready for the next event?",
		"🎯 You're in, %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], identifier)
}
