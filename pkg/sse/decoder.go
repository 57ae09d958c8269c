package sse

import (
	"bytes"
	"strings"
)

// separator delimits complete event blocks. Carriage returns are normalized
// away before framing, so "\r\n\r\n" separators collapse to this.
var separator = []byte("\n\n")

// Decoder frames SSE events out of raw network chunks.
//
// The decoder owns a single mutable byte buffer for the lifetime of one
// stream. Each call to Feed appends a chunk and returns every event whose
// terminating blank line has arrived; anything after the last separator
// stays buffered until more data (or Flush) arrives.
//
//	┌────────────────┐
//	│   raw chunk    │
//	└───────┬────────┘
//	        ▼
//	┌────────────────┐    ┌──────────────────────────┐
//	│ Decoder.Feed() │───▶│ buffer (unconsumed tail) │
//	└───────┬────────┘    └──────────────────────────┘
//	        ▼
//	┌────────────────┐
//	│    []Event     │
//	└────────────────┘
//
// Bytes are only converted to text at block boundaries. UTF-8 continuation
// bytes can never equal '\n', so a multi-byte sequence split across two
// chunks is reassembled in the buffer before any decoding happens.
type Decoder struct {
	buf []byte
}

// NewDecoder returns an empty Decoder ready to receive chunks.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a raw chunk to the buffer and returns all fully-framed
// events found so far, in wire order. Blocks that carry no data (blank
// separators, keep-alives, bare "event:" lines) produce no event.
func (d *Decoder) Feed(chunk []byte) []Event {
	d.buf = append(d.buf, chunk...)

	// Normalize CRLF pairs. A lone trailing '\r' stays in the buffer and is
	// collapsed once its '\n' arrives in the next chunk.
	d.buf = bytes.ReplaceAll(d.buf, []byte("\r\n"), []byte("\n"))

	var events []Event
	for {
		idx := bytes.Index(d.buf, separator)
		if idx < 0 {
			break
		}

		block := strings.TrimSpace(string(d.buf[:idx]))
		d.buf = d.buf[idx+len(separator):]

		if ev, ok := parseBlock(block); ok {
			events = append(events, ev)
		}
	}

	return events
}

// Flush drains the buffer after the stream ends. If any non-whitespace text
// remains (the server closed without a trailing blank line), it is parsed as
// one final block. The second return is false when nothing was pending.
func (d *Decoder) Flush() (Event, bool) {
	block := strings.TrimSpace(string(d.buf))
	d.buf = nil

	if block == "" {
		return Event{}, false
	}

	return parseBlock(block)
}

// parseBlock extracts the event type and data payload from one raw block.
// Returns false for blocks whose joined data is empty after trimming: data
// is what carries the payload, so type-only blocks are skipped.
func parseBlock(block string) (Event, bool) {
	ev := Event{Type: DefaultType}

	var dataLines []string
	for _, line := range strings.Split(block, "\n") {
		// Lines starting with ':' are comments per the SSE spec.
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := parseLine(line)
		switch field {
		case "data":
			dataLines = append(dataLines, value)
		case "event":
			ev.Type = value
		case "id":
			ev.ID = value
		default:
			// * "retry" is intentionally ignored — the client never reconnects.
			// * Other unknown fields are ignored per the SSE spec.
		}
	}

	ev.Data = strings.Join(dataLines, "\n")
	if strings.TrimSpace(ev.Data) == "" {
		return Event{}, false
	}

	return ev, true
}

// parseLine splits a non-comment SSE line into field name and value.
//
// Per the SSE spec, a line has the form "field:value" where the first
// space after the colon is optional and stripped if present. A line with
// no colon is a field name with an empty value.
func parseLine(line string) (field, value string) {
	before, after, ok := strings.Cut(line, ":")
	if !ok {
		return line, ""
	}

	return before, strings.TrimPrefix(after, " ")
}
