// Package sse provides a minimal, purpose-built SSE (Server-Sent Events)
// decoder for the caseline client. It frames discrete events out of the raw
// byte chunks of a streaming HTTP response body as they arrive, matching the
// wire format emitted by the case-management API's assistant endpoints.
//
// This package intentionally does NOT provide SSE writer or server
// capabilities.
//
// See the SSE specification:
// https://html.spec.whatwg.org/multipage/server-sent-events.html
package sse

// DefaultType is the event type implied when a block carries no "event:"
// line, per the SSE spec.
const DefaultType = "message"

// Event represents a single parsed SSE event, delimited by a blank line
// in the upstream byte stream.
type Event struct {
	// Type is the SSE event type from the "event:" field.
	// Blocks without an "event:" line get DefaultType.
	Type string

	// Data is the concatenated contents of all "data:" lines for this event,
	// joined with "\n" (per the SSE spec, multiple data fields are joined
	// with a single newline).
	Data string

	// ID is the last event ID from the "id:" field, if present.
	ID string
}
