package sse_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/caselinehq/caseline/pkg/sse"
)

var _ = Describe("Decoder", func() {
	var dec *sse.Decoder

	BeforeEach(func() {
		dec = sse.NewDecoder()
	})

	Describe("Feed", func() {
		Context("with standard SSE events", func() {
			It("frames a single event", func() {
				events := dec.Feed([]byte("data: hello world\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("hello world"))
				Expect(events[0].Type).To(Equal(sse.DefaultType))
				Expect(events[0].ID).To(BeEmpty())
			})

			It("frames multiple events from one chunk in order", func() {
				events := dec.Feed([]byte("data: first\n\ndata: second\n\ndata: third\n\n"))

				Expect(events).To(HaveLen(3))
				Expect(events[0].Data).To(Equal("first"))
				Expect(events[1].Data).To(Equal("second"))
				Expect(events[2].Data).To(Equal("third"))
			})

			It("parses the event type", func() {
				events := dec.Feed([]byte("event: delta\ndata: {\"text\":\"Hi\"}\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal("delta"))
				Expect(events[0].Data).To(Equal("{\"text\":\"Hi\"}"))
			})

			It("parses the event ID", func() {
				events := dec.Feed([]byte("id: 42\ndata: hello\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].ID).To(Equal("42"))
				Expect(events[0].Data).To(Equal("hello"))
			})

			It("joins multiple data lines with newline", func() {
				events := dec.Feed([]byte("data: line one\ndata: line two\ndata: line three\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("line one\nline two\nline three"))
			})

			It("does not corrupt a JSON payload split across data lines", func() {
				events := dec.Feed([]byte("data: {\"a\":1,\n" + "data: \"b\":2}\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("{\"a\":1,\n\"b\":2}"))
			})

			It("defaults the type to message when no event line is present", func() {
				events := dec.Feed([]byte("data: {\"status\":\"ok\"}\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal("message"))
			})

			It("keeps the last event line when a block has several", func() {
				events := dec.Feed([]byte("event: start\nevent: delta\ndata: x\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal("delta"))
			})
		})

		Context("with partial trailing data", func() {
			It("keeps an unterminated block buffered", func() {
				events := dec.Feed([]byte("data: first\n\ndata: partial"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("first"))

				events = dec.Feed([]byte(" still going\n\n"))
				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("partial still going"))
			})

			It("frames a separator split across two chunks", func() {
				events := dec.Feed([]byte("data: hello\n"))
				Expect(events).To(BeEmpty())

				events = dec.Feed([]byte("\ndata: next\n\n"))
				Expect(events).To(HaveLen(2))
				Expect(events[0].Data).To(Equal("hello"))
				Expect(events[1].Data).To(Equal("next"))
			})

			It("reassembles a multi-byte character split across chunks", func() {
				payload := []byte("data: café\n\n")
				// Split inside the two-byte é sequence.
				cut := len(payload) - 3

				events := dec.Feed(payload[:cut])
				Expect(events).To(BeEmpty())

				events = dec.Feed(payload[cut:])
				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("café"))
			})

			It("feeds one byte at a time without corruption", func() {
				input := "event: delta\ndata: {\"text\":\"héllo\"}\n\nevent: done\ndata: {\"result\":\"ok\"}\n\n"

				var events []sse.Event
				for i := 0; i < len(input); i++ {
					events = append(events, dec.Feed([]byte{input[i]})...)
				}

				Expect(events).To(HaveLen(2))
				Expect(events[0].Type).To(Equal("delta"))
				Expect(events[0].Data).To(Equal("{\"text\":\"héllo\"}"))
				Expect(events[1].Type).To(Equal("done"))
			})
		})

		Context("with CRLF line endings", func() {
			It("normalizes CRLF separators", func() {
				events := dec.Feed([]byte("event: start\r\ndata: {\"status\":\"ok\"}\r\n\r\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Type).To(Equal("start"))
				Expect(events[0].Data).To(Equal("{\"status\":\"ok\"}"))
			})

			It("handles a CRLF pair split across chunks", func() {
				events := dec.Feed([]byte("data: hello\r\n\r"))
				Expect(events).To(BeEmpty())

				events = dec.Feed([]byte("\ndata: next\r\n\r\n"))
				Expect(events).To(HaveLen(2))
				Expect(events[0].Data).To(Equal("hello"))
				Expect(events[1].Data).To(Equal("next"))
			})
		})

		Context("with blocks that carry no payload", func() {
			It("skips blank separator runs", func() {
				events := dec.Feed([]byte("\n\n\n\ndata: hello\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("hello"))
			})

			It("skips blocks with only an event line", func() {
				events := dec.Feed([]byte("event: ping\n\ndata: real\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("real"))
			})

			It("skips comment-only keep-alive blocks", func() {
				events := dec.Feed([]byte(": keep-alive\n\ndata: real\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("real"))
			})

			It("skips blocks whose data is whitespace", func() {
				events := dec.Feed([]byte("data: \n\n"))

				Expect(events).To(BeEmpty())
			})
		})

		Context("with field variations", func() {
			It("handles data with no space after the colon", func() {
				events := dec.Feed([]byte("data:no-space\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("no-space"))
			})

			It("ignores comment lines inside an event", func() {
				events := dec.Feed([]byte(": comment\ndata: hello\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("hello"))
			})

			It("ignores unknown fields", func() {
				events := dec.Feed([]byte("retry: 3000\nfoo: bar\ndata: hello\n\n"))

				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("hello"))
			})

			It("treats a line with no colon as a field with empty value", func() {
				events := dec.Feed([]byte("data\ndata: hello\n\n"))

				// Bare "data" contributes an empty data line.
				Expect(events).To(HaveLen(1))
				Expect(events[0].Data).To(Equal("\nhello"))
			})
		})
	})

	Describe("Flush", func() {
		It("returns nothing on an empty buffer", func() {
			_, ok := dec.Flush()
			Expect(ok).To(BeFalse())
		})

		It("returns nothing when only whitespace remains", func() {
			dec.Feed([]byte("data: hello\n\n \n"))

			_, ok := dec.Flush()
			Expect(ok).To(BeFalse())
		})

		It("yields a final unterminated event", func() {
			events := dec.Feed([]byte("event: done\ndata: {\"result\":\"ok\"}"))
			Expect(events).To(BeEmpty())

			ev, ok := dec.Flush()
			Expect(ok).To(BeTrue())
			Expect(ev.Type).To(Equal("done"))
			Expect(ev.Data).To(Equal("{\"result\":\"ok\"}"))
		})

		It("drains the buffer so a second flush is empty", func() {
			dec.Feed([]byte("data: tail"))

			_, ok := dec.Flush()
			Expect(ok).To(BeTrue())

			_, ok = dec.Flush()
			Expect(ok).To(BeFalse())
		})
	})
})
