package assistant

import "time"

// Sink receives diagnostic callbacks as a stream progresses. It exists for
// observability only: implementations must never affect control flow, and
// the client works identically with the default no-op sink.
type Sink interface {
	// OnChunk is called once per body read with the chunk's byte count.
	OnChunk(n int)

	// OnEvent is called for every parsed event, before the caller's callback.
	OnEvent(ev Event)

	// OnDone is called when the stream resolves with a terminal payload.
	OnDone()

	// OnError is called when the stream fails, with the failure reason.
	OnError(err error)
}

// nopSink is the default diagnostics sink used when none is injected.
type nopSink struct{}

func (nopSink) OnChunk(int)   {}
func (nopSink) OnEvent(Event) {}
func (nopSink) OnDone()       {}
func (nopSink) OnError(error) {}

// NopSink returns a Sink that does nothing.
func NopSink() Sink { return nopSink{} }

// Stats is a Sink that accumulates live stream statistics for debug
// display. It is scoped to a single stream; create a fresh one per call.
type Stats struct {
	Chunks int
	Bytes  int
	Events map[EventType]int
	Err    error

	started time.Time
	elapsed time.Duration
}

// NewStats returns a Stats sink with the clock already running.
func NewStats() *Stats {
	return &Stats{
		Events:  make(map[EventType]int),
		started: time.Now(),
	}
}

func (s *Stats) OnChunk(n int) {
	s.Chunks++
	s.Bytes += n
}

func (s *Stats) OnEvent(ev Event) {
	s.Events[ev.Type]++
}

func (s *Stats) OnDone() {
	s.elapsed = time.Since(s.started)
}

func (s *Stats) OnError(err error) {
	s.Err = err
	s.elapsed = time.Since(s.started)
}

// Elapsed returns the time from creation to the terminal callback, or the
// running total if the stream has not finished yet.
func (s *Stats) Elapsed() time.Duration {
	if s.elapsed > 0 {
		return s.elapsed
	}
	return time.Since(s.started)
}
