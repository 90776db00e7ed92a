package log

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/cancelrun/internal/log/actions"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type Format string

const (
	Actions Format = "actions"
	Text    Format = "text"
	JSON    Format = "json"
	Otel    Format = "otel"
)

var (
	Formats = map[string]Format{
		"actions": Actions,
		"text":    Text,
		"json":    JSON,
		"otel":    Otel,
	}
)

// New builds the logger for the requested format. The returned func flushes
// any buffered records and must be called before the process exits.
func New(opts ...Option) (*slog.Logger, func(context.Context) error, error) {
	options := NewOptions(opts...)

	format, ok := Formats[options.Format]
	if !ok {
		return nil, nil, fmt.Errorf("unsupported log format: %s", options.Format)
	}

	level := slog.LevelInfo
	if options.Debug {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	noop := func(context.Context) error { return nil }

	switch format {
	case Text:
		return slog.New(slog.NewTextHandler(options.Writer, handlerOpts)), noop, nil
	case JSON:
		return slog.New(slog.NewJSONHandler(options.Writer, handlerOpts)), noop, nil
	case Otel:
		exporter, err := stdoutlog.New(stdoutlog.WithWriter(options.Writer))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log exporter: %w", err)
		}

		provider := sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)),
		)

		global.SetLoggerProvider(provider)

		handler := otelslog.NewHandler(options.Name, otelslog.WithLoggerProvider(provider))

		return slog.New(&levelHandler{level: level, handler: handler}), provider.Shutdown, nil
	default:
		return slog.New(actions.NewHandler(options.Writer, handlerOpts)), noop, nil
	}
}
