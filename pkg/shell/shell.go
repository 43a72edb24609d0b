package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// Shell runs child processes with teed, captured output. Script runs go
// through the configured shell binary with the profile sourced first, so
// commands see the user's login environment.
type Shell struct {
	// Path is the shell binary used by RunScript, e.g. /bin/zsh.
	Path string
	// Profile is sourced before every script. Empty means no profile.
	Profile string
}

// New returns a Shell for the given shell binary and profile file. An
// empty path falls back to $SHELL, then /bin/bash. The profile is taken
// as given; use Detect to pick one up from the home directory.
func New(path, profile string) *Shell {
	if path == "" {
		path = os.Getenv("SHELL")
	}
	if path == "" {
		path = "/bin/bash"
	}
	return &Shell{Path: path, Profile: profile}
}

// Detect resolves the shell from $SHELL and pairs it with the profile file
// conventionally sourced by that shell, if one exists.
func Detect() *Shell {
	sh := New("", "")
	sh.Profile = FindProfile(filepath.Base(sh.Path))
	return sh
}

// FindProfile returns the profile file for the named shell, or "" when the
// shell is unknown or the file does not exist in the user's home.
func FindProfile(shellName string) string {
	profiles := map[string]string{
		"zsh":  ".zprofile",
		"bash": ".bash_profile",
		"sh":   ".profile",
	}
	name, ok := profiles[shellName]
	if !ok {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, name)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// RunOptions selects the sinks fed by a run and an optional stdin. The
// zero value captures output silently. A sink instance appearing in both
// sink lists must be wrapped with Synced.
type RunOptions struct {
	StdoutSinks []Sink
	StderrSinks []Sink
	Stdin       io.Reader
}

// Run spawns the process described by spec, drains stdout and stderr
// concurrently until both close, then waits for the exit code.
//
// A spawn failure returns a *SpawnError and no Result. A non-zero exit is
// not an error; it lands in Result.ExitCode. A read failure on one stream
// is recorded in the Result without disturbing the other stream. If the
// process cannot be waited on, the Result holds the captured output and
// the error is a *WaitError.
func (sh *Shell) Run(ctx context.Context, spec ProcessSpec, opts RunOptions) (Result, error) {
	if err := spec.validate(); err != nil {
		return Result{}, &SpawnError{Command: spec.Command, Err: err}
	}

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = spec.environ()
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, &SpawnError{Command: spec.Command, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, &SpawnError{Command: spec.Command, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return Result{}, &SpawnError{Command: spec.Command, Err: err}
	}

	tee := NewStdTee(stdout, stderr, opts.StdoutSinks, opts.StderrSinks)
	tee.Start()
	tee.Wait()

	result := Result{
		RunID:     uuid.Must(uuid.NewV7()).String(),
		Args:      spec.Argv(),
		Stdout:    tee.Stdout.Text(),
		Stderr:    tee.Stderr.Text(),
		StdoutErr: tee.Stdout.Err(),
		StderrErr: tee.Stderr.Err(),
	}

	err = cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
		return result, &WaitError{Err: err}
	}
	return result, nil
}

// RunScript runs a script line through the shell, sourcing the profile
// first when one is configured. The "." form is used so it works in POSIX
// shells as well as bash and zsh.
func (sh *Shell) RunScript(ctx context.Context, script string, opts RunOptions) (Result, error) {
	line := script
	if sh.Profile != "" {
		line = ". " + sh.Profile + " && " + script
	}
	spec := ProcessSpec{Command: sh.Path, Args: []string{"-c", line}}
	return sh.Run(ctx, spec, opts)
}
