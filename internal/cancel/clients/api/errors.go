package api

import "fmt"

// StatusError is returned for replies with a status above 299.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// ErrorMessage picks the text reported for a failed reply: the JSON "message"
// field when present, else the raw body, else a generic line with the code.
func ErrorMessage(statusCode int, contents []byte, obj map[string]any) string {
	if msg, ok := obj["message"].(string); ok && len(msg) > 0 {
		return msg
	}

	if len(contents) > 0 {
		return string(contents)
	}

	return fmt.Sprintf("Failed request: (%d)", statusCode)
}
