package telemetry

type Option func(o *Options)

type Options struct {
	Env            string
	Name           string
	Version        string
	TracesAddress  string
	MetricsAddress string
}

func WithEnv(env string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

func WithVersion(version string) Option {
	return func(o *Options) {
		o.Version = version
	}
}

// WithTracesAddress sets the OTLP/HTTP host:port for spans. Empty disables export.
func WithTracesAddress(addr string) Option {
	return func(o *Options) {
		o.TracesAddress = addr
	}
}

// WithMetricsAddress sets the OTLP/HTTP host:port for metrics. Empty disables export.
func WithMetricsAddress(addr string) Option {
	return func(o *Options) {
		o.MetricsAddress = addr
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Env:     "ci",
		Name:    "cancelrun",
		Version: "0.1.0",
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
