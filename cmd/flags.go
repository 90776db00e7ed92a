package cmd

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/w-h-a/cancelrun/internal/cancel/config"
	"github.com/w-h-a/cancelrun/internal/retry"
)

// envVars lists the variables an input can be read from, first match wins:
// any extra names given, the one the Actions runner exports for a step
// input, then a plain CANCELRUN_ name.
func envVars(name string, first ...string) []string {
	return append(first,
		"INPUT_"+strings.ToUpper(name),
		"CANCELRUN_"+strings.ToUpper(strings.ReplaceAll(name, "-", "_")),
	)
}

func CancelFlags() []cli.Flag {
	policy := retry.DefaultPolicy()

	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.InputAPIURL,
			Usage:   "base URL of the Currents API",
			EnvVars: envVars(config.InputAPIURL),
		},
		&cli.StringFlag{
			Name:    config.InputBearerToken,
			Usage:   "token sent as Authorization: Bearer <token>",
			EnvVars: envVars(config.InputBearerToken),
		},
		&cli.StringFlag{
			Name:    config.InputGithubRunID,
			Usage:   "GitHub Actions run id",
			EnvVars: envVars(config.InputGithubRunID),
		},
		&cli.StringFlag{
			Name:    config.InputGithubRunAttempt,
			Usage:   "GitHub Actions run attempt",
			EnvVars: envVars(config.InputGithubRunAttempt),
		},
		&cli.StringFlag{
			Name:        config.InputRetries,
			Usage:       "retries after the first failed attempt",
			DefaultText: strconv.Itoa(policy.Retries),
			EnvVars:     envVars(config.InputRetries),
		},
		&cli.StringFlag{
			Name:        config.InputMinTimeout,
			Usage:       "delay before the first retry, a duration or milliseconds",
			DefaultText: policy.MinDelay.String(),
			EnvVars:     envVars(config.InputMinTimeout),
		},
		&cli.StringFlag{
			Name:        config.InputMaxTimeout,
			Usage:       "upper bound of the delay between retries",
			DefaultText: policy.MaxDelay.String(),
			EnvVars:     envVars(config.InputMaxTimeout),
		},
		&cli.StringFlag{
			Name:        config.InputFactor,
			Usage:       "growth factor of the delay between retries",
			DefaultText: strconv.FormatFloat(policy.Factor, 'g', -1, 64),
			EnvVars:     envVars(config.InputFactor),
		},
		&cli.StringFlag{
			Name:        config.InputRequestTimeout,
			Usage:       "timeout of a single attempt, 0 for none",
			DefaultText: "0",
			EnvVars:     envVars(config.InputRequestTimeout),
		},
		// string, not bool: RUNNER_DEBUG is owned by the runner and anything
		// but "1" or "true" means off
		&cli.StringFlag{
			Name:    config.InputDebug,
			Usage:   "log the full API result (1 or true)",
			EnvVars: envVars(config.InputDebug, "RUNNER_DEBUG"),
		},
		&cli.StringFlag{
			Name:    config.InputLogFormat,
			Usage:   "actions, text, json or otel",
			Value:   "actions",
			EnvVars: envVars(config.InputLogFormat),
		},
		&cli.StringFlag{
			Name:    config.InputEnv,
			Usage:   "deployment environment reported with telemetry",
			EnvVars: envVars(config.InputEnv),
		},
		&cli.StringFlag{
			Name:    config.InputName,
			Usage:   "service name reported with telemetry",
			EnvVars: envVars(config.InputName),
		},
		&cli.StringFlag{
			Name:    config.InputVersion,
			Usage:   "service version reported with telemetry",
			EnvVars: envVars(config.InputVersion),
		},
		&cli.StringFlag{
			Name:    config.InputTracesAddress,
			Usage:   "OTLP/HTTP host:port for traces",
			EnvVars: envVars(config.InputTracesAddress),
		},
		&cli.StringFlag{
			Name:    config.InputMetricsAddress,
			Usage:   "OTLP/HTTP host:port for metrics",
			EnvVars: envVars(config.InputMetricsAddress),
		},
	}
}
