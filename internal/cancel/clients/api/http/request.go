package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/w-h-a/cancelrun/internal/cancel/clients/api"
)

// Request sends a JSON PUT authorized with a bearer token and decodes the
// reply into B. It does not judge the status code beyond failing on > 299.
func Request[B any](ctx context.Context, client *http.Client, opts ...api.RequestOption) (*api.TypedResponse[B], error) {
	options := api.NewRequestOptions(opts...)

	bs, err := json.Marshal(options.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, options.URL, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+options.BearerToken)

	for k, v := range options.Headers {
		req.Header.Set(k, v)
	}

	rsp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer rsp.Body.Close()

	response := &api.TypedResponse[B]{
		StatusCode: rsp.StatusCode,
		Headers:    flattenHeaders(rsp.Header),
	}

	if rsp.StatusCode == http.StatusNotFound {
		return response, nil
	}

	contents, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var obj map[string]any

	if len(contents) > 0 {
		var result *B
		if err := json.Unmarshal(contents, &result); err == nil {
			response.Result = result
		}
		_ = json.Unmarshal(contents, &obj)
	}

	if rsp.StatusCode > 299 {
		return nil, &api.StatusError{
			StatusCode: rsp.StatusCode,
			Message:    api.ErrorMessage(rsp.StatusCode, contents, obj),
		}
	}

	return response, nil
}

func flattenHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))

	for k, vs := range h {
		headers[strings.ToLower(k)] = strings.Join(vs, ", ")
	}

	return headers
}
