package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/caselinehq/caseline/pkg/logger"
)

var _ = Describe("NewLoggerWithWriters", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	It("writes info messages", func() {
		log := logger.NewLoggerWithWriters(false, buf)

		log.Info("stream started")
		_ = log.Sync()

		Expect(buf.String()).To(ContainSubstring("stream started"))
	})

	It("suppresses debug messages by default", func() {
		log := logger.NewLoggerWithWriters(false, buf)

		log.Debug("chunk received")
		_ = log.Sync()

		Expect(buf.String()).To(BeEmpty())
	})

	It("emits debug messages when debug is enabled", func() {
		log := logger.NewLoggerWithWriters(true, buf)

		log.Debug("chunk received")
		_ = log.Sync()

		Expect(buf.String()).To(ContainSubstring("chunk received"))
	})

	It("fans out to multiple writers", func() {
		other := &bytes.Buffer{}
		log := logger.NewLoggerWithWriters(false, buf, other)

		log.Info("hello")
		_ = log.Sync()

		Expect(buf.String()).To(ContainSubstring("hello"))
		Expect(other.String()).To(ContainSubstring("hello"))
	})
})
