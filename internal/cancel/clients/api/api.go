package api

import (
	"context"

	"github.com/w-h-a/cancelrun/api/cancellation"
)

const (
	CancelByGithubCIPath = "/runs/cancel-by-github-ci"
	DefaultUserAgent     = "cancel-currents-run-action"
)

// TypedResponse is a decoded API reply. Result is nil when the server answered
// 404 or sent a body that was empty or not JSON.
type TypedResponse[T any] struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Result     *T                `json:"result"`
}

type Client interface {
	CancelByGithubCI(ctx context.Context, req cancellation.Request) (*TypedResponse[cancellation.Result], error)
}
