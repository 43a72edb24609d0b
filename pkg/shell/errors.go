package shell

import "fmt"

// SpawnError reports that a child process could not be created, e.g. the
// command does not exist or its pipes could not be set up. No output is
// captured when spawning fails.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// StreamReadError reports that one output stream failed mid-read. It is
// recorded in the Result for its stream and never aborts the sibling
// stream or the exit-code wait.
type StreamReadError struct {
	Stream string
	Err    error
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Stream, e.Err)
}

func (e *StreamReadError) Unwrap() error { return e.Err }

// WaitError reports that the exit code could not be retrieved. The Result
// returned alongside it still holds whatever output was captured.
type WaitError struct {
	Err error
}

func (e *WaitError) Error() string {
	return fmt.Sprintf("wait: %v", e.Err)
}

func (e *WaitError) Unwrap() error { return e.Err }
