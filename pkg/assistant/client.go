// Package assistant implements the streaming client for the case-management
// API's AI assistant endpoints. A call performs one streaming POST, decodes
// the SSE response incrementally, dispatches each event to an optional
// callback, and resolves with the payload of the terminal done event.
//
// The client never retries or reconnects: a failed or incomplete stream is
// a single terminal failure, and callers retry at the call-site if desired.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/caselinehq/caseline/pkg/sse"
)

// Client issues streaming requests against the case-management API.
// Each Stream call owns its own buffer and decoder, so concurrent calls on
// one Client are fully independent.
type Client struct {
	baseURL    string
	csrfHeader string
	csrfToken  string
	httpClient *http.Client
	logger     *zap.Logger
	sink       Sink
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller is
// responsible for cookie handling when overriding.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCSRF sets the anti-forgery header attached to every request.
func WithCSRF(header, token string) Option {
	return func(c *Client) {
		c.csrfHeader = header
		c.csrfToken = token
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithSink injects a diagnostics sink. Defaults to NopSink.
func WithSink(s Sink) Option {
	return func(c *Client) { c.sink = s }
}

// New creates a Client for the API at baseURL. The default HTTP client
// carries a cookie jar so the session cookies the API sets are included on
// subsequent requests. No timeout is enforced: callers needing a deadline
// supply one through the context.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
		logger:     zap.NewNop(),
		sink:       NopSink(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Stream performs one streaming POST to path and returns the payload of the
// terminal done event. Every parsed event is dispatched to onEvent (if
// non-nil) in arrival order before completion is evaluated, so callers see
// start and delta events as they arrive.
//
// Cancelling ctx aborts the underlying read and fails the call with the
// transport's cancellation error.
func (c *Client) Stream(ctx context.Context, path string, body any, onEvent func(Event)) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.csrfHeader != "" {
		req.Header.Set(c.csrfHeader, c.csrfToken)
	}

	start := time.Now()
	c.logger.Debug("starting assistant stream",
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure: no response was obtained, propagate.
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.apiError(resp)
		c.sink.OnError(apiErr)
		return nil, apiErr
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		c.sink.OnError(ErrNoBody)
		return nil, ErrNoBody
	}

	final, err := c.readStream(resp.Body, onEvent)
	if err != nil {
		c.sink.OnError(err)
		return nil, err
	}

	c.sink.OnDone()
	c.logger.Debug("assistant stream complete",
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)),
	)

	return final, nil
}

// readStream drives the read loop: decode chunks, frame events, dispatch,
// and resolve with the recorded done payload once the body is exhausted.
func (c *Client) readStream(body io.Reader, onEvent func(Event)) (json.RawMessage, error) {
	dec := sse.NewDecoder()

	var final json.RawMessage
	var done bool

	buf := make([]byte, 32*1024)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			c.sink.OnChunk(n)
			for _, raw := range dec.Feed(buf[:n]) {
				if err := c.dispatch(raw, onEvent, &final, &done); err != nil {
					return nil, err
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading stream: %w", readErr)
		}
	}

	// The server may close without a trailing blank line; flush the last
	// unterminated block so its event is not lost.
	if raw, ok := dec.Flush(); ok {
		if err := c.dispatch(raw, onEvent, &final, &done); err != nil {
			return nil, err
		}
	}

	if !done {
		return nil, ErrIncompleteStream
	}

	return final, nil
}

// dispatch JSON-decodes one framed event, forwards it to the sink and the
// caller's callback, and applies the completion rules: done records the
// payload (last wins) while the read continues, error aborts immediately.
func (c *Client) dispatch(raw sse.Event, onEvent func(Event), final *json.RawMessage, done *bool) error {
	var data json.RawMessage
	if err := json.Unmarshal([]byte(raw.Data), &data); err != nil {
		return fmt.Errorf("decoding %q event payload: %w", raw.Type, err)
	}

	ev := Event{Type: EventType(raw.Type), Data: data}
	c.sink.OnEvent(ev)
	if onEvent != nil {
		onEvent(ev)
	}

	switch ev.Type {
	case EventDone:
		*final = ev.Data
		*done = true
	case EventError:
		return &StreamError{Message: errorMessage(ev.Data)}
	}

	return nil
}

// apiError turns a non-2xx response into an APIError, preferring a
// structured message from the body over the bare status text.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		case payload.Message != "":
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}

// Stream performs a streaming call through c and decodes the terminal done
// payload into T.
func Stream[T any](ctx context.Context, c *Client, path string, body any, onEvent func(Event)) (T, error) {
	var result T

	raw, err := c.Stream(ctx, path, body, onEvent)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("decoding final payload: %w", err)
	}

	return result, nil
}
