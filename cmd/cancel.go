package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/w-h-a/cancelrun/internal/cancel"
	"github.com/w-h-a/cancelrun/internal/cancel/config"
	"github.com/w-h-a/cancelrun/internal/log"
	"github.com/w-h-a/cancelrun/internal/telemetry"
)

func CancelRun(ctx *cli.Context) error {
	// logger
	logger, stopLogs, err := log.New(
		log.WithFormat(ctx.String(config.InputLogFormat)),
		log.WithDebug(config.IsDebug(ctx.String(config.InputDebug))),
		log.WithName(ctx.String(config.InputName)),
		log.WithWriter(ctx.App.Writer),
	)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	defer stopLogs(context.Background())

	// cfg
	cfg, err := config.Load(ctx)
	if err != nil {
		return fail(ctx, logger, err)
	}

	// telemetry
	shutdown, err := telemetry.Setup(
		ctx.Context,
		telemetry.WithEnv(cfg.Env),
		telemetry.WithName(cfg.Name),
		telemetry.WithVersion(cfg.Version),
		telemetry.WithTracesAddress(cfg.TracesAddress),
		telemetry.WithMetricsAddress(cfg.MetricsAddress),
	)
	if err != nil {
		return fail(ctx, logger, err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := shutdown(shutdownCtx); err != nil {
			logger.WarnContext(shutdownCtx, "telemetry shutdown failed", "error", err)
		}
	}()

	// service
	cancelerService := cancel.Factory(ctx.Context, cfg, logger)

	if err := cancelerService.Run(ctx.Context, cfg.Request()); err != nil {
		return fail(ctx, logger, err)
	}

	return nil
}

// fail records err as the outcome of the step and exits 1 without repeating
// the message on stderr.
func fail(ctx *cli.Context, logger *slog.Logger, err error) error {
	logger.ErrorContext(ctx.Context, err.Error())
	return cli.Exit("", 1)
}
