package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/w-h-a/cancelrun/cmd"
)

func main() {
	// ctx
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// app
	app := cmd.NewApp()

	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.ErrorContext(ctx, "failed to run", "error", err)
		stop()
		os.Exit(1)
	}
}
