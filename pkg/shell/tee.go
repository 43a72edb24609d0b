package shell

import (
	"bufio"
	"io"
	"strings"
)

// StreamTee drains a single output stream of a running process. Each line
// is forwarded to every sink in registration order and then appended to the
// tee's own capture buffer. Lines keep their trailing newline; a final
// unterminated line is still delivered.
//
// A tee runs on its own goroutine between Start and Wait. It never writes
// to the process or signals it; end-of-stream is the only normal exit.
type StreamTee struct {
	name   string
	source io.Reader
	sinks  []Sink

	buf  strings.Builder
	err  error
	done chan struct{}
}

// NewStreamTee returns a tee for one stream. The name labels read errors,
// conventionally "stdout" or "stderr".
func NewStreamTee(name string, source io.Reader, sinks ...Sink) *StreamTee {
	return &StreamTee{
		name:   name,
		source: source,
		sinks:  sinks,
		done:   make(chan struct{}),
	}
}

// Start begins draining the stream on a new goroutine.
func (t *StreamTee) Start() {
	go t.run()
}

func (t *StreamTee) run() {
	defer close(t.done)
	reader := bufio.NewReader(t.source)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			for _, s := range t.sinks {
				s.Accept(line)
			}
			t.buf.WriteString(line)
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			t.err = &StreamReadError{Stream: t.name, Err: err}
			return
		}
	}
}

// Wait blocks until the stream reaches end-of-stream or fails.
func (t *StreamTee) Wait() {
	<-t.done
}

// Text returns the captured stream content. Call after Wait.
func (t *StreamTee) Text() string {
	return t.buf.String()
}

// Err returns the *StreamReadError that terminated the drain, or nil on a
// clean end-of-stream. Call after Wait.
func (t *StreamTee) Err() error {
	return t.err
}

// StdTee pairs one StreamTee per output stream of a process so both are
// drained concurrently. A full stderr pipe can never stall stdout, and
// vice versa.
type StdTee struct {
	Stdout *StreamTee
	Stderr *StreamTee
}

func NewStdTee(stdout, stderr io.Reader, stdoutSinks, stderrSinks []Sink) *StdTee {
	return &StdTee{
		Stdout: NewStreamTee("stdout", stdout, stdoutSinks...),
		Stderr: NewStreamTee("stderr", stderr, stderrSinks...),
	}
}

// Start launches both tees.
func (t *StdTee) Start() {
	t.Stdout.Start()
	t.Stderr.Start()
}

// Wait joins both tees. A read failure on one stream does not shorten the
// wait for the other.
func (t *StdTee) Wait() {
	t.Stdout.Wait()
	t.Stderr.Wait()
}
