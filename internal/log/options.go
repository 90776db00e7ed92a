package log

import (
	"io"
	"os"
)

type Option func(o *Options)

type Options struct {
	Format string
	Debug  bool
	Name   string
	Writer io.Writer
}

func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

func WithDebug(debug bool) Option {
	return func(o *Options) {
		o.Debug = debug
	}
}

func WithName(name string) Option {
	return func(o *Options) {
		if len(name) == 0 {
			return
		}
		o.Name = name
	}
}

func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		if w == nil {
			return
		}
		o.Writer = w
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Format: string(Actions),
		Name:   "cancelrun",
		Writer: os.Stdout,
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
