package task

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/teeshell/teeshell/pkg/shell"
	"github.com/teeshell/teeshell/pkg/task"
	"go.temporal.io/sdk/activity"
)

// Activities exposes shell runs as Temporal activities.
type Activities struct {
	sh *shell.Shell
}

func NewActivities(sh *shell.Shell) *Activities {
	return &Activities{sh: sh}
}

// Run executes the command described by the input and returns the teed
// result. A non-zero exit code is a successful activity execution; only
// spawn failures, wait failures, and oversized output fail it.
func (a *Activities) Run(ctx context.Context, input task.RunInput) (task.RunOutput, error) {
	spec := shell.ProcessSpec{
		Command: input.Command,
		Args:    input.Args,
		Dir:     input.Dir,
		Env:     input.Env,
	}
	res, runErr := a.sh.Run(ctx, spec, runOptions(ctx, input.StdinData, input.Heartbeat))
	if runErr != nil {
		var spawnErr *shell.SpawnError
		if errors.As(runErr, &spawnErr) {
			return task.RunOutput{}, runErr
		}
	}
	out, err := toOutput(strings.Join(spec.Argv(), " "), res)
	if err != nil {
		return task.RunOutput{}, err
	}
	return out, runErr
}

// BuildScript returns an activity that runs command through the shell with
// ${name} placeholders expanded from the input arguments. Each value is
// single-quoted so the shell cannot word-split it.
func BuildScript(sh *shell.Shell, originCommand string) func(ctx context.Context, input task.ScriptInput) (task.RunOutput, error) {
	return func(ctx context.Context, input task.ScriptInput) (task.RunOutput, error) {
		command := os.Expand(originCommand, func(name string) string {
			return "'" + input.Args[name] + "'"
		})
		res, runErr := sh.RunScript(ctx, command, runOptions(ctx, input.StdinData, input.Heartbeat))
		if runErr != nil {
			var spawnErr *shell.SpawnError
			if errors.As(runErr, &spawnErr) {
				return task.RunOutput{}, runErr
			}
		}
		out, err := toOutput(command, res)
		if err != nil {
			return task.RunOutput{}, err
		}
		return out, runErr
	}
}

func runOptions(ctx context.Context, stdin []byte, heartbeat bool) shell.RunOptions {
	var opts shell.RunOptions
	if len(stdin) > 0 {
		opts.Stdin = bytes.NewReader(stdin)
	}
	if heartbeat {
		// one sink instance feeds both streams, so it must be synced
		hb := shell.Synced(heartbeatSink{ctx: ctx})
		opts.StdoutSinks = []shell.Sink{hb}
		opts.StderrSinks = []shell.Sink{hb}
	}
	return opts
}

func toOutput(command string, res shell.Result) (task.RunOutput, error) {
	if len(res.Stdout)+len(res.Stderr) > task.OutputSizeMax {
		return task.RunOutput{}, task.ErrOutputTooLarge
	}
	out := task.RunOutput{
		RunID:    res.RunID,
		Command:  command,
		ExitCode: res.ExitCode,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
	if res.StdoutErr != nil {
		out.StdoutErr = res.StdoutErr.Error()
	}
	if res.StderrErr != nil {
		out.StderrErr = res.StderrErr.Error()
	}
	return out, nil
}

// heartbeatSink reports each output line as activity progress.
type heartbeatSink struct {
	ctx context.Context
}

func (s heartbeatSink) Accept(line string) {
	activity.RecordHeartbeat(s.ctx, line)
}
