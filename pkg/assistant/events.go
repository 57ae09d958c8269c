package assistant

import "encoding/json"

// EventType tags a stream event. The assistant endpoints emit "start",
// "delta", "done" and "error"; anything else is passed through to the
// caller's callback without special handling.
type EventType string

const (
	// EventStart signals stream initiation and carries a status payload.
	EventStart EventType = "start"

	// EventDelta carries an incremental text fragment for progressive display.
	EventDelta EventType = "delta"

	// EventDone carries the terminal payload. Exactly one done or error
	// event ends a stream.
	EventDone EventType = "done"

	// EventError aborts the stream with a server-supplied message.
	EventError EventType = "error"
)

// Event is one parsed assistant stream event: the SSE event type plus its
// JSON-decoded data payload.
type Event struct {
	Type EventType
	Data json.RawMessage
}

// Status is the payload of a start event.
type Status struct {
	Status string `json:"status"`
}

// Delta is the payload of a delta event.
type Delta struct {
	Text string `json:"text"`
}

// DeltaText decodes the event's payload as a Delta and returns its text.
// Returns "" for payloads that do not carry a text field.
func (e Event) DeltaText() string {
	var d Delta
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return ""
	}
	return d.Text
}
