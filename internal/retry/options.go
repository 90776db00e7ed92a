package retry

type Option func(o *Options)

type Options struct {
	OnFailedAttempt func(f Failure)
}

// WithOnFailedAttempt registers a callback that runs after every retryable
// failure, including the last one.
func WithOnFailedAttempt(fn func(f Failure)) Option {
	return func(o *Options) {
		o.OnFailedAttempt = fn
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		OnFailedAttempt: func(Failure) {},
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
