package canceler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
	"github.com/w-h-a/cancelrun/internal/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

type Service struct {
	client   api.Client
	logger   *slog.Logger
	policy   retry.Policy
	debug    bool
	tracer   trace.Tracer
	attempts metric.Int64Counter
}

// Run cancels the run and reports progress through the service logger. A
// non-nil error is the terminal failure of the invocation.
func (s *Service) Run(ctx context.Context, req cancellation.Request) error {
	s.logger.InfoContext(ctx, "Calling the Currents API...")
	s.logger.InfoContext(ctx, fmt.Sprintf("GitHub run id: %s", req.GithubRunID))
	s.logger.InfoContext(ctx, fmt.Sprintf("GitHub run attempt: %s", req.GithubRunAttempt))

	rsp, err := s.Cancel(ctx, req)
	if err != nil {
		return err
	}

	if s.debug {
		bs, err := json.Marshal(rsp)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		s.logger.DebugContext(ctx, string(bs))
	}

	s.logger.InfoContext(ctx, "The run was successfully canceled!")

	return nil
}

// Cancel calls the API until it answers with a result. A reply without a
// result aborts at once with cancellation.ErrResourceNotFound.
func (s *Service) Cancel(ctx context.Context, req cancellation.Request) (*api.TypedResponse[cancellation.Result], error) {
	ctx, span := s.tracer.Start(ctx, "Canceler.Cancel", trace.WithAttributes(
		attribute.String("github.run.id", req.GithubRunID),
		attribute.String("github.run.attempt", req.GithubRunAttempt),
	))
	defer span.End()

	rsp, err := retry.Do(
		ctx,
		s.policy,
		func(ctx context.Context, attempt int) (*api.TypedResponse[cancellation.Result], retry.Class, error) {
			return s.attempt(ctx, req, attempt)
		},
		retry.WithOnFailedAttempt(func(f retry.Failure) {
			s.logger.InfoContext(
				ctx,
				fmt.Sprintf("Attempt %d failed. There are %d retries left.", f.AttemptNumber, f.RetriesLeft),
				"error", f.Err,
			)
		}),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "run canceled")

	return rsp, nil
}

func (s *Service) attempt(ctx context.Context, req cancellation.Request, n int) (*api.TypedResponse[cancellation.Result], retry.Class, error) {
	ctx, span := s.tracer.Start(ctx, "Canceler.attempt", trace.WithAttributes(
		attribute.Int("attempt", n),
	))
	defer span.End()

	rsp, err := s.client.CancelByGithubCI(ctx, req)
	if err != nil {
		s.count(ctx, retry.Retryable.String())
		span.SetStatus(codes.Error, err.Error())
		return nil, retry.Retryable, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", rsp.StatusCode))

	if rsp.Result == nil {
		s.count(ctx, retry.Fatal.String())
		span.SetStatus(codes.Error, cancellation.ErrResourceNotFound.Error())
		return nil, retry.Fatal, cancellation.ErrResourceNotFound
	}

	s.count(ctx, "ok")
	span.SetStatus(codes.Ok, "attempt succeeded")

	return rsp, retry.Retryable, nil
}

func (s *Service) count(ctx context.Context, outcome string) {
	s.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func New(c api.Client, logger *slog.Logger, p retry.Policy, debug bool) *Service {
	var attempts metric.Int64Counter = noop.Int64Counter{}

	counter, err := otel.Meter("canceler-service").Int64Counter(
		"cancelrun.attempts",
		metric.WithDescription("Calls made to the cancellation endpoint"),
	)
	if err != nil {
		logger.Warn("failed to create attempts counter", "error", err)
	} else {
		attempts = counter
	}

	return &Service{
		client:   c,
		logger:   logger,
		policy:   p,
		debug:    debug,
		tracer:   otel.Tracer("canceler-service"),
		attempts: attempts,
	}
}
