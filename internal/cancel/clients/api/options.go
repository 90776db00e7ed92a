package api

import (
	"net/http"
	"strings"
	"time"
)

type Option func(o *Options)

type Options struct {
	BaseURL     string
	BearerToken string
	UserAgent   string
	RequestID   string
	Timeout     time.Duration
	Transport   http.RoundTripper
}

func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = strings.TrimRight(url, "/")
	}
}

func WithBearerToken(token string) Option {
	return func(o *Options) {
		o.BearerToken = token
	}
}

func WithUserAgent(agent string) Option {
	return func(o *Options) {
		o.UserAgent = agent
	}
}

func WithRequestID(id string) Option {
	return func(o *Options) {
		o.RequestID = id
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		UserAgent: DefaultUserAgent,
		Transport: http.DefaultTransport,
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}

type RequestOption func(o *RequestOptions)

type RequestOptions struct {
	URL         string
	Body        any
	BearerToken string
	Headers     map[string]string
}

func RequestWithURL(url string) RequestOption {
	return func(o *RequestOptions) {
		o.URL = url
	}
}

func RequestWithBody(body any) RequestOption {
	return func(o *RequestOptions) {
		o.Body = body
	}
}

func RequestWithBearerToken(token string) RequestOption {
	return func(o *RequestOptions) {
		o.BearerToken = token
	}
}

func RequestWithHeader(key, value string) RequestOption {
	return func(o *RequestOptions) {
		if len(value) == 0 {
			return
		}
		o.Headers[key] = value
	}
}

func NewRequestOptions(opts ...RequestOption) RequestOptions {
	options := RequestOptions{
		Headers: map[string]string{},
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
