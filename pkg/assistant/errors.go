package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteStream is returned when the connection closes normally but
// no done event was ever observed.
var ErrIncompleteStream = errors.New("stream ended without completion")

// ErrNoBody is returned when the response carries no streamable body.
var ErrNoBody = errors.New("response has no streamable body")

// APIError is a non-2xx response from the API. Message is extracted from
// the JSON body ("detail" or "message" fields) when possible, otherwise it
// falls back to the HTTP status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// StreamError is an error-typed event emitted by the server mid-stream.
// It aborts the read loop immediately; any deltas already dispatched to the
// callback are not rolled back.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return "stream error: " + e.Message
}

// errorMessage pulls a human-readable message out of an error event's
// payload. The assistant endpoints send {"message": ...}; "detail" and bare
// JSON strings are accepted, and the raw payload is the last resort.
func errorMessage(data json.RawMessage) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		return s
	}

	return strings.TrimSpace(string(data))
}
