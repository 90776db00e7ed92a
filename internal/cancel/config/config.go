package config

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/internal/retry"
)

const (
	InputAPIURL           = "currents-api-url"
	InputBearerToken      = "bearer-token"
	InputGithubRunID      = "github-run-id"
	InputGithubRunAttempt = "github-run-attempt"

	InputRetries        = "retries"
	InputMinTimeout     = "min-timeout"
	InputMaxTimeout     = "max-timeout"
	InputFactor         = "factor"
	InputRequestTimeout = "request-timeout"
	InputDebug          = "debug"
	InputLogFormat      = "log-format"
	InputEnv            = "env"
	InputName           = "name"
	InputVersion        = "version"
	InputTracesAddress  = "traces-address"
	InputMetricsAddress = "metrics-address"
)

// Source is where named inputs come from. *cli.Context satisfies it.
// Every input is read as text and parsed here.
type Source interface {
	IsSet(name string) bool
	String(name string) string
}

type Config struct {
	APIURL           string
	BearerToken      string
	GithubRunID      string
	GithubRunAttempt string
	Retries          int
	MinTimeout       time.Duration
	MaxTimeout       time.Duration
	Factor           float64
	RequestTimeout   time.Duration
	Debug            bool
	Env              string
	Name             string
	Version          string
	TracesAddress    string
	MetricsAddress   string
}

func (c *Config) Request() cancellation.Request {
	return cancellation.Request{
		GithubRunID:      c.GithubRunID,
		GithubRunAttempt: c.GithubRunAttempt,
	}
}

func (c *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		Retries:  c.Retries,
		MinDelay: c.MinTimeout,
		MaxDelay: c.MaxTimeout,
		Factor:   c.Factor,
	}
}

// Load reads and validates every input. Required inputs are checked in a
// fixed order and the first missing one is reported.
func Load(src Source) (*Config, error) {
	policy := retry.DefaultPolicy()

	instance := &Config{
		Retries:    policy.Retries,
		MinTimeout: policy.MinDelay,
		MaxTimeout: policy.MaxDelay,
		Factor:     policy.Factor,
		Env:        "ci",
		Name:       "cancelrun",
		Version:    "0.1.0",
	}

	required := []struct {
		name string
		dst  *string
	}{
		{InputAPIURL, &instance.APIURL},
		{InputBearerToken, &instance.BearerToken},
		{InputGithubRunID, &instance.GithubRunID},
		{InputGithubRunAttempt, &instance.GithubRunAttempt},
	}

	for _, in := range required {
		v := strings.TrimSpace(src.String(in.name))
		if len(v) == 0 {
			return nil, &MissingInputError{Name: in.name}
		}
		*in.dst = v
	}

	u, err := url.Parse(instance.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return nil, &InvalidInputError{Name: InputAPIURL, Reason: "must be an absolute http(s) URL"}
	}

	instance.APIURL = strings.TrimRight(instance.APIURL, "/")

	if v, ok := optional(src, InputRetries); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &InvalidInputError{Name: InputRetries, Reason: "must be a whole number"}
		}
		instance.Retries = n
	}

	if v, ok := optional(src, InputMinTimeout); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return nil, &InvalidInputError{Name: InputMinTimeout, Reason: err.Error()}
		}
		instance.MinTimeout = d
	}

	if v, ok := optional(src, InputMaxTimeout); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return nil, &InvalidInputError{Name: InputMaxTimeout, Reason: err.Error()}
		}
		instance.MaxTimeout = d
	}

	if v, ok := optional(src, InputFactor); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &InvalidInputError{Name: InputFactor, Reason: "must be a number"}
		}
		instance.Factor = f
	}

	if err := instance.RetryPolicy().Validate(); err != nil {
		return nil, &InvalidInputError{Name: policyInput(err), Reason: err.Error()}
	}

	if v, ok := optional(src, InputRequestTimeout); ok {
		d, err := ParseDuration(v)
		if err != nil {
			return nil, &InvalidInputError{Name: InputRequestTimeout, Reason: err.Error()}
		}
		if d < 0 {
			return nil, &InvalidInputError{Name: InputRequestTimeout, Reason: "may not be negative"}
		}
		instance.RequestTimeout = d
	}

	instance.Debug = IsDebug(src.String(InputDebug))

	env := src.String(InputEnv)
	if len(env) > 0 {
		instance.Env = env
	}

	name := src.String(InputName)
	if len(name) > 0 {
		instance.Name = name
	}

	version := src.String(InputVersion)
	if len(version) > 0 {
		instance.Version = version
	}

	instance.TracesAddress = src.String(InputTracesAddress)
	instance.MetricsAddress = src.String(InputMetricsAddress)

	return instance, nil
}

// IsDebug reports whether a debug input turns debug output on. Only "1"
// and "true" do; anything else, including garbage, leaves it off.
func IsDebug(v string) bool {
	v = strings.TrimSpace(v)
	return v == "1" || strings.EqualFold(v, "true")
}

// ParseDuration accepts a Go duration ("1.5s") or a bare number of
// milliseconds ("1500").
func ParseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.New("must be a duration like 1s or a number of milliseconds")
	}

	return d, nil
}

func optional(src Source, name string) (string, bool) {
	if !src.IsSet(name) {
		return "", false
	}

	v := strings.TrimSpace(src.String(name))

	return v, len(v) > 0
}

func policyInput(err error) string {
	switch {
	case errors.Is(err, retry.ErrNegativeRetries):
		return InputRetries
	case errors.Is(err, retry.ErrFactorBelowOne):
		return InputFactor
	case errors.Is(err, retry.ErrMinAboveMax):
		return InputMinTimeout
	default:
		return InputMinTimeout + "/" + InputMaxTimeout
	}
}
