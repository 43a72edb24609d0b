package shell

import (
	"io"
	"os"
	"sync"
)

// Sink consumes one line of teed output. Delivery is side-effect-only: a
// sink has no way to reject a line, and a sink that blocks stalls the tee
// feeding it. A single sink instance registered on both streams of a run
// must be wrapped with Synced.
type Sink interface {
	Accept(line string)
}

// WriterSink forwards every line to an io.Writer, typically a terminal
// stream or a SysTee writer. Write errors are ignored; display surfaces
// have nowhere to report them.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Accept(line string) {
	_, _ = io.WriteString(s.W, line)
}

// FuncSink adapts a plain function to the Sink interface.
type FuncSink func(line string)

func (f FuncSink) Accept(line string) { f(line) }

// NullSink discards every line.
type NullSink struct{}

func (NullSink) Accept(string) {}

// FileSink appends lines to a log file.
type FileSink struct {
	f *os.File
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f}, nil
}

func (s *FileSink) Accept(line string) {
	_, _ = s.f.WriteString(line)
}

func (s *FileSink) Close() error {
	return s.f.Close()
}

// Synced wraps a sink with a mutex so the same instance can receive lines
// from both streams of a run. The interleaving of the two streams at the
// wrapped sink remains unspecified.
func Synced(s Sink) Sink {
	return &syncedSink{inner: s}
}

type syncedSink struct {
	mu    sync.Mutex
	inner Sink
}

func (s *syncedSink) Accept(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Accept(line)
}
