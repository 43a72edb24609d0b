package shell

// Result is the outcome of one run: the exit code, the captured text of
// both output streams, and any per-stream read failure. Partial output
// from a crashing process is never discarded; a stream that failed
// mid-read still contributes everything captured before the failure.
type Result struct {
	// RunID uniquely identifies the invocation.
	RunID string
	// Args is the argv the process was started with.
	Args []string
	// ExitCode is the process's exit status. -1 when the process was
	// killed by a signal or the exit code could not be retrieved.
	ExitCode int
	Stdout   string
	Stderr   string
	// StdoutErr and StderrErr hold the *StreamReadError for their stream,
	// or nil when the stream was drained to a clean end-of-stream.
	StdoutErr error
	StderrErr error
}

// Ok reports whether the process exited zero and both streams were drained
// without a read error.
func (r Result) Ok() bool {
	return r.ExitCode == 0 && r.StdoutErr == nil && r.StderrErr == nil
}
