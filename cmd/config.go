// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"

	"eventsops/cli/internal/config"
	apperrors "eventsops/cli/internal/errors"
	"eventsops/cli/internal/manifest"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
	Long: `The config command shows the effective settings, including environment
overrides, and changes the values stored in the config file.

Settings: api_url, log_level, log_format, theme, strict_restore.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, base, err := settings()
		if err != nil {
			return err
		}
		p, _ := config.Path()
		return pterm.DefaultTable.WithData([][]string{
			{"api_url", base},
			{"log_level", cfg.LogLevel},
			{"log_format", cfg.LogFormat},
			{"theme", fmt.Sprintf("%s (%s)", cfg.Theme, cfg.Theme.Resolve())},
			{"strict_restore", strconv.FormatBool(cfg.StrictRestore)},
			{"file", p},
		}).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateConfig(args[0], args[1])
	},
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|system]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(config.ThemeLight), string(config.ThemeDark), string(config.ThemeSystem)},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return updateConfig("theme", args[0])
		}
		cfg, _, err := settings()
		if err != nil {
			return err
		}
		pterm.Info.Printf("Theme: %s (resolves to %s)\n", cfg.Theme, cfg.Theme.Resolve())
		return nil
	},
}

func updateConfig(key, value string) error {
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if key == "api_url" {
		if _, err := manifest.ResolveBaseURL(value); err != nil {
			return apperrors.Wrap(apperrors.Validation, "invalid API address", err)
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return apperrors.Wrap(apperrors.Validation, err.Error(), err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	pterm.Success.Printf("Saved %s\n", key)
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd, themeCmd)
	configCmd.AddCommand(configSetCmd)
}
