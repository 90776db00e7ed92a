package cancellation

import (
	"encoding/json"
	"strings"
)

// Factory decodes a cancellation request body as it arrives on the wire.
func Factory(bs []byte) (*Request, error) {
	var r *Request

	if err := json.Unmarshal(bs, &r); err != nil {
		return nil, err
	}

	if r == nil {
		return nil, ErrEmptyRequest
	}

	if len(strings.TrimSpace(r.GithubRunID)) == 0 {
		return nil, ErrMissingRunID
	}

	if len(strings.TrimSpace(r.GithubRunAttempt)) == 0 {
		return nil, ErrMissingRunAttempt
	}

	return r, nil
}
