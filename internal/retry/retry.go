package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

type Class int

const (
	// Retryable failures consume one attempt from the budget.
	Retryable Class = iota
	// Fatal failures end the loop regardless of the remaining budget.
	Fatal
)

func (c Class) String() string {
	switch c {
	case Retryable:
		return "retryable"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Policy bounds the loop: Retries+1 attempts in total, waiting
// MinDelay*Factor^(n-1) capped at MaxDelay between them.
type Policy struct {
	Retries  int
	MinDelay time.Duration
	MaxDelay time.Duration
	Factor   float64
}

func DefaultPolicy() Policy {
	return Policy{
		Retries:  3,
		MinDelay: 1 * time.Second,
		MaxDelay: 10 * time.Second,
		Factor:   2,
	}
}

func (p Policy) Validate() error {
	if p.Retries < 0 {
		return ErrNegativeRetries
	}

	if p.MinDelay <= 0 || p.MaxDelay <= 0 {
		return ErrNonPositiveDelay
	}

	if p.MinDelay > p.MaxDelay {
		return ErrMinAboveMax
	}

	if p.Factor < 1 {
		return ErrFactorBelowOne
	}

	return nil
}

func (p Policy) backOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     p.MinDelay,
		RandomizationFactor: 0,
		Multiplier:          p.Factor,
		MaxInterval:         p.MaxDelay,
	}

	b.Reset()

	return b
}

type Failure struct {
	AttemptNumber int
	RetriesLeft   int
	Err           error
}

type Operation[T any] func(ctx context.Context, attempt int) (T, Class, error)

// Do runs op until it succeeds, returns a Fatal failure, or the budget of
// the policy is spent. Attempts never overlap. The error of the last attempt
// is returned once the budget is exhausted.
func Do[T any](ctx context.Context, p Policy, op Operation[T], opts ...Option) (T, error) {
	if err := p.Validate(); err != nil {
		var zero T
		return zero, err
	}

	options := NewOptions(opts...)

	attempt := 0

	operation := func() (T, error) {
		attempt++

		v, class, err := op(ctx, attempt)
		if err == nil {
			return v, nil
		}

		if class == Fatal {
			return v, backoff.Permanent(err)
		}

		options.OnFailedAttempt(Failure{
			AttemptNumber: attempt,
			RetriesLeft:   p.Retries - (attempt - 1),
			Err:           err,
		})

		return v, err
	}

	v, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(uint(p.Retries+1)),
		backoff.WithMaxElapsedTime(0),
	)

	// a fatal result on the final attempt comes back still wrapped
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return v, permanent.Unwrap()
	}

	return v, err
}
