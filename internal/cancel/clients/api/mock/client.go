package mock

import (
	"context"

	testmock "github.com/stretchr/testify/mock"
	"github.com/w-h-a/cancelrun/api/cancellation"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
)

type mockClient struct {
	testmock.Mock
}

func (c *mockClient) CancelByGithubCI(ctx context.Context, req cancellation.Request) (*api.TypedResponse[cancellation.Result], error) {
	args := c.Called(ctx, req)
	rsp, _ := args.Get(0).(*api.TypedResponse[cancellation.Result])
	return rsp, args.Error(1)
}

func NewClient(opts ...api.Option) *mockClient {
	return &mockClient{}
}
