package cancel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
	httpapi "github.com/w-h-a/cancelrun/internal/cancel/clients/api/http"
	"github.com/w-h-a/cancelrun/internal/cancel/config"
	"github.com/w-h-a/cancelrun/internal/cancel/services/canceler"
)

// Factory wires the API client and the canceler service for one invocation.
func Factory(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...api.Option) *canceler.Service {
	requestID := strings.ReplaceAll(uuid.NewString(), "-", "")

	logger.DebugContext(ctx, "prepared cancellation request", "requestID", requestID)

	// clients
	clientOpts := []api.Option{
		api.WithBaseURL(cfg.APIURL),
		api.WithBearerToken(cfg.BearerToken),
		api.WithRequestID(requestID),
		api.WithTimeout(cfg.RequestTimeout),
	}

	clientOpts = append(clientOpts, opts...)

	apiClient := httpapi.NewClient(clientOpts...)

	// services
	return canceler.New(apiClient, logger, cfg.RetryPolicy(), cfg.Debug)
}
