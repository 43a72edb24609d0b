package task

import "errors"

// Activity names registered by the worker. Script activities built with
// BuildScript are registered under operator-chosen names instead.
const (
	Run = "Run"
)

const (
	// OutputSizeMax is the Temporal limit, in bytes, for BLOB size in an
	// event before the server logs a warning. Captured output beyond it
	// is rejected rather than truncated.
	OutputSizeMax = 512 * 1024
)

var ErrOutputTooLarge = errors.New("output too large")

// RunInput describes one remote command invocation.
type RunInput struct {
	Command   string
	Args      []string
	Dir       string
	Env       map[string]string
	StdinData []byte
	// Heartbeat streams each output line back as activity heartbeat
	// detail while the command runs.
	Heartbeat bool
}

// ScriptInput parametrizes a script activity built with BuildScript.
type ScriptInput struct {
	Args      map[string]string
	StdinData []byte
	Heartbeat bool
}

// RunOutput carries the result back through Temporal. Stream read failures
// travel as strings because error values do not survive serialization.
type RunOutput struct {
	RunID     string
	Command   string
	ExitCode  int
	Stdout    string
	Stderr    string
	StdoutErr string
	StderrErr string
}
