package retry

import "errors"

var (
	ErrNegativeRetries  = errors.New("retries may not be negative")
	ErrNonPositiveDelay = errors.New("retry delays must be positive durations")
	ErrMinAboveMax      = errors.New("min retry delay may not exceed max retry delay")
	ErrFactorBelowOne   = errors.New("retry factor may not be < 1")
)
