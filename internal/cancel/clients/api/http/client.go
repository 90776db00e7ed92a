package http

import (
	"context"
	"net/http"

	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

type httpClient struct {
	options api.Options
	client  *http.Client
}

func (c *httpClient) CancelByGithubCI(ctx context.Context, req cancellation.Request) (*api.TypedResponse[cancellation.Result], error) {
	return Request[cancellation.Result](
		ctx,
		c.client,
		api.RequestWithURL(c.options.BaseURL+api.CancelByGithubCIPath),
		api.RequestWithBody(req),
		api.RequestWithBearerToken(c.options.BearerToken),
		api.RequestWithHeader("User-Agent", c.options.UserAgent),
		api.RequestWithHeader("X-Request-Id", c.options.RequestID),
	)
}

func NewClient(opts ...api.Option) api.Client {
	options := api.NewOptions(opts...)

	transport := otelhttp.NewTransport(
		options.Transport,
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string { return r.Method + " " + r.URL.Path }),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithPropagators(otel.GetTextMapPropagator()),
	)

	return &httpClient{
		options: options,
		client: &http.Client{
			Transport: transport,
			Timeout:   options.Timeout,
		},
	}
}
