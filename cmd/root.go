// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface of the EventsOps operator
// client. Every screen of the staffing dashboard is a subcommand; the shell in
// shell.go wires the credential store, HTTP client and session together and
// owns all navigation decisions.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"eventsops/cli/internal/logging"
	"eventsops/cli/internal/manifest"

	"github.com/spf13/cobra"
)

var (
	showVersion bool
	apiURLFlag  string
	verboseFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eventsops",
	Short: "EventsOps CLI for events, staff assignments and check-ins",
	Long: `eventsops is the operator client of the EventsOps staffing API. Sign in with
'eventsops login', then manage events, assign staff and record check-ins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, base, err := settings()
			if err != nil {
				base = "invalid (" + err.Error() + ")"
			}
			fmt.Printf("eventsops %s\napi %s\n", Version, base)
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application. Errors that were already shown to the
// operator only set the exit code.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	var shown *shownError
	if !errors.Is(err, ErrNavigateLogin) && !errors.As(err, &shown) {
		fmt.Fprint(os.Stderr, logging.FormatError(err))
	}
	os.Exit(1)
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and API address")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "EventsOps API address (default from config, EVENTSOPS_API_URL or "+manifest.DefaultBaseURL+")")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}
