// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"eventsops/cli/internal/backend"
	"eventsops/cli/internal/dashboard"
	"eventsops/cli/internal/forms"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var eventInput forms.EventInput

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"event"},
	Short:   "List, inspect and manage events",
	Long: `The events command group lists events and shows one event with its staffing
metrics. It also creates, publishes and archives events.

Without a subcommand it shows the overview counters followed by the list.`,

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

		if err := showStats(cmd, sh); err != nil {
			return err
		}
		return listEvents(cmd, sh)
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the overview counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		defer sh.settle()
		if err := sh.protect(cmd.Context()); err != nil {
			return err
		}
		return showStats(cmd, sh)
	},
}

func showStats(cmd *cobra.Command, sh *shell) error {
	stats, err := sh.events.Stats(cmd.Context())
	if err != nil {
		return sh.fail(err, "loading event statistics", "Failed to load statistics")
	}
	pterm.DefaultSection.Println("Overview")
	return pterm.DefaultTable.WithHasHeader().WithData([][]string{
		{"Total", "Published", "Upcoming"},
		{strconv.Itoa(stats.Total), strconv.Itoa(stats.Published), strconv.Itoa(stats.Upcoming)},
	}).Render()
}

var eventsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all events",
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		defer sh.settle()
		if err := sh.protect(cmd.Context()); err != nil {
			return err
		}
		return listEvents(cmd, sh)
	},
}

func listEvents(cmd *cobra.Command, sh *shell) error {
	stop := startSpinner(os.Stdout, "Loading events")
	events, err := sh.events.List(cmd.Context())
	stop()
	if err != nil {
		return sh.fail(err, "loading events", "Failed to load events")
	}
	pterm.DefaultSection.Println("Events")
	if len(events) == 0 {
		pterm.Info.Println("No events yet. Create one with 'eventsops events create'.")
		return nil
	}
	rows := [][]string{{"ID", "Title", "Status", "When", "Location", "Capacity"}}
	for _, ev := range events {
		rows = append(rows, []string{
			ev.ID,
			ev.Title,
			statusLabel(ev.Status),
			dashboard.FormatDateRange(ev.StartDate, ev.EndDate),
			orDash(ev.Location),
			capacityLabel(ev.Capacity),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one event with its staffing metrics",
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

		ev, err := sh.events.Get(ctx, args[0])
		if err != nil {
			return sh.fail(err, "loading the event", "Failed to load event")
		}
		printEvent(ev)

		return showMetrics(cmd, sh, ev.ID)
	},
}

var eventsMetricsCmd = &cobra.Command{
	Use:   "metrics <event-id>",
	Short: "Show staffing metrics of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := newShell(cmd)
		if err != nil {
			return err
		}
		defer sh.settle()
		if err := sh.protect(cmd.Context()); err != nil {
			return err
		}
		return showMetrics(cmd, sh, args[0])
	},
}

func showMetrics(cmd *cobra.Command, sh *shell, id string) error {
	m, err := sh.events.Metrics(cmd.Context(), id)
	if err != nil {
		return sh.fail(err, "loading event metrics", "Failed to load metrics")
	}
	pterm.DefaultSection.Println("Staffing")
	rows := [][]string{
		{"Assignments", strconv.Itoa(m.TotalAssignments)},
		{"Check-ins", strconv.Itoa(m.TotalCheckIns)},
		{"Check-ins today", strconv.Itoa(m.CheckInsToday)},
	}
	roles := make([]string, 0, len(m.AssignmentsByRole))
	for role := range m.AssignmentsByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		rows = append(rows, []string{"  " + role, strconv.Itoa(m.AssignmentsByRole[role])})
	}
	return pterm.DefaultTable.WithData(rows).Render()
}

func printEvent(ev backend.Event) {
	pterm.DefaultSection.Println(ev.Title)
	rows := [][]string{
		{"ID", ev.ID},
		{"Status", statusLabel(ev.Status)},
		{"Starts", dashboard.FormatDateTime(ev.StartDate)},
		{"Ends", dashboard.FormatDateTime(ev.EndDate)},
		{"Location", orDash(ev.Location)},
		{"Capacity", capacityLabel(ev.Capacity)},
	}
	if ev.Description != "" {
		rows = append(rows, []string{"Description", ev.Description})
	}
	_ = pterm.DefaultTable.WithData(rows).Render()
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft event",
	Long: `The create command creates a draft event. Start and end use the
datetime-local format, for example 2025-06-01T18:00, and are read in local
time. The end must be after the start.`,
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

		ev, notice, err := sh.events.Create(ctx, eventInput)
		if err := sh.mutated(notice, err, "creating the event"); err != nil {
			return err
		}
		printEvent(ev)
		fmt.Printf("   Publish it with 'eventsops events publish %s'.\n", ev.ID)
		return nil
	},
}

var eventsPublishCmd = &cobra.Command{
	Use:   "publish <event-id>",
	Short: "Publish a draft event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventTransition(cmd, args[0], "publishing the event", (*dashboard.Events).Publish)
	},
}

var eventsArchiveCmd = &cobra.Command{
	Use:   "archive <event-id>",
	Short: "Archive an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return eventTransition(cmd, args[0], "archiving the event", (*dashboard.Events).Archive)
	},
}

type transition func(*dashboard.Events, context.Context, string) (backend.Event, dashboard.Notice, error)

func eventTransition(cmd *cobra.Command, id, action string, move transition) error {
	sh, err := newShell(cmd)
	if err != nil {
		return err
	}
	defer sh.settle()
	ctx := cmd.Context()
	if err := sh.protect(ctx); err != nil {
		return err
	}
	ev, notice, err := move(sh.events, ctx, id)
	if err := sh.mutated(notice, err, action); err != nil {
		return err
	}
	pterm.Printf("   %s is now %s\n", ev.Title, statusLabel(ev.Status))
	return nil
}

func statusLabel(s backend.EventStatus) string {
	switch s {
	case backend.StatusPublished:
		return pterm.Green("published")
	case backend.StatusDraft:
		return pterm.Yellow("draft")
	case backend.StatusCancelled:
		return pterm.Red("cancelled")
	case backend.StatusArchived:
		return pterm.Gray("archived")
	case "":
		return "-"
	default:
		return string(s)
	}
}

func capacityLabel(c *int) string {
	if c == nil {
		return "-"
	}
	return strconv.Itoa(*c)
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsShowCmd, eventsStatsCmd, eventsMetricsCmd,
		eventsCreateCmd, eventsPublishCmd, eventsArchiveCmd)

	f := eventsCreateCmd.Flags()
	f.StringVar(&eventInput.Title, "title", "", "Event title, at least 3 characters")
	f.StringVar(&eventInput.Description, "description", "", "Optional description")
	f.StringVar(&eventInput.Venue, "venue", "", "Optional venue")
	f.StringVar(&eventInput.StartAt, "start", "", "Start, e.g. 2025-06-01T18:00")
	f.StringVar(&eventInput.EndAt, "end", "", "End, e.g. 2025-06-01T23:00")
	f.IntVar(&eventInput.Capacity, "capacity", 0, "Maximum attendees, at least 1")
}
