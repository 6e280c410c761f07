// Package main is the entry point for the EventsOps CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"eventsops/cli/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd.Execute(ctx)
}
