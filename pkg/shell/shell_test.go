package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

func TestShellTestSuite(t *testing.T) {
	suite.Run(t, new(ShellTestSuite))
}

type ShellTestSuite struct {
	suite.Suite
	sh *Shell
}

func (s *ShellTestSuite) SetupTest() {
	// explicit shell without a profile keeps runs hermetic
	s.sh = &Shell{Path: "/bin/sh"}
}

func (s *ShellTestSuite) TestRun() {
	tests := []struct {
		name         string
		spec         ProcessSpec
		wantSpawnErr bool
		wantExitCode int
		wantStdout   string
		wantStderr   string
	}{
		{
			name:       "hello to stdout",
			spec:       ProcessSpec{Command: "echo", Args: []string{"hello"}},
			wantStdout: "hello\n",
		},
		{
			name:         "stderr then stdout with exit 1",
			spec:         ProcessSpec{Command: "/bin/sh", Args: []string{"-c", "echo warn >&2; echo ok; exit 1"}},
			wantExitCode: 1,
			wantStdout:   "ok\n",
			wantStderr:   "warn\n",
		},
		{
			name: "no output at all",
			spec: ProcessSpec{Command: "true"},
		},
		{
			name:         "exit code only",
			spec:         ProcessSpec{Command: "false"},
			wantExitCode: 1,
		},
		{
			name:         "command not found",
			spec:         ProcessSpec{Command: "teeshell-no-such-command"},
			wantSpawnErr: true,
		},
		{
			name:         "empty spec",
			spec:         ProcessSpec{},
			wantSpawnErr: true,
		},
		{
			name:       "environment override",
			spec:       ProcessSpec{Command: "/bin/sh", Args: []string{"-c", "echo $GREETING"}, Env: map[string]string{"GREETING": "hi"}},
			wantStdout: "hi\n",
		},
		{
			name:       "working directory",
			spec:       ProcessSpec{Command: "pwd", Dir: "/"},
			wantStdout: "/\n",
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			require := s.Require()
			res, err := s.sh.Run(context.Background(), tt.spec, RunOptions{})
			if tt.wantSpawnErr {
				var spawnErr *SpawnError
				require.ErrorAs(err, &spawnErr)
				return
			}
			require.NoError(err)
			require.Equal(tt.wantExitCode, res.ExitCode)
			require.Equal(tt.wantStdout, res.Stdout)
			require.Equal(tt.wantStderr, res.Stderr)
			require.NoError(res.StdoutErr)
			require.NoError(res.StderrErr)
			require.NotEmpty(res.RunID)
			require.Equal(tt.spec.Argv(), res.Args)
		})
	}
}

func (s *ShellTestSuite) TestRunSinksMatchCapture() {
	require := s.Require()
	var stdoutLines, stderrLines []string
	opts := RunOptions{
		StdoutSinks: []Sink{FuncSink(func(line string) { stdoutLines = append(stdoutLines, line) })},
		StderrSinks: []Sink{FuncSink(func(line string) { stderrLines = append(stderrLines, line) })},
	}
	spec := ProcessSpec{Command: "/bin/sh", Args: []string{"-c", `printf "a\nb\nc\n"; echo oops >&2`}}

	res, err := s.sh.Run(context.Background(), spec, opts)
	require.NoError(err)
	require.Equal([]string{"a\n", "b\n", "c\n"}, stdoutLines)
	require.Equal([]string{"oops\n"}, stderrLines)
	require.Equal(strings.Join(stdoutLines, ""), res.Stdout)
	require.Equal(strings.Join(stderrLines, ""), res.Stderr)
}

func (s *ShellTestSuite) TestRunStdin() {
	require := s.Require()
	res, err := s.sh.Run(context.Background(),
		ProcessSpec{Command: "cat"},
		RunOptions{Stdin: strings.NewReader("Hello World")})
	require.NoError(err)
	require.Equal(0, res.ExitCode)
	require.Equal("Hello World", res.Stdout)
}

func (s *ShellTestSuite) TestRunExitCodeIsRepeatable() {
	require := s.Require()
	spec := ProcessSpec{Command: "false"}
	first, err := s.sh.Run(context.Background(), spec, RunOptions{})
	require.NoError(err)
	second, err := s.sh.Run(context.Background(), spec, RunOptions{})
	require.NoError(err)
	require.Equal(first.ExitCode, second.ExitCode)
	require.NotEqual(first.RunID, second.RunID)
}

func (s *ShellTestSuite) TestRunContextTimeout() {
	require := s.Require()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res, err := s.sh.Run(ctx, ProcessSpec{Command: "sleep", Args: []string{"10"}}, RunOptions{})
	require.NoError(err)
	require.Equal(-1, res.ExitCode)
}

func (s *ShellTestSuite) TestRunScript() {
	require := s.Require()
	res, err := s.sh.RunScript(context.Background(), "echo warn >&2 && echo ok", RunOptions{})
	require.NoError(err)
	require.Equal(0, res.ExitCode)
	require.Equal("ok\n", res.Stdout)
	require.Equal("warn\n", res.Stderr)
}

func (s *ShellTestSuite) TestRunScriptSourcesProfile() {
	require := s.Require()
	profile := filepath.Join(s.T().TempDir(), "profile")
	require.NoError(os.WriteFile(profile, []byte("GREETING=from-profile; export GREETING\n"), 0o644))

	sh := &Shell{Path: "/bin/sh", Profile: profile}
	res, err := sh.RunScript(context.Background(), "echo $GREETING", RunOptions{})
	require.NoError(err)
	require.Equal("from-profile\n", res.Stdout)
}

func (s *ShellTestSuite) TestNew() {
	require := s.Require()
	sh := New("/bin/zsh", "/home/u/.zprofile")
	require.Equal("/bin/zsh", sh.Path)
	require.Equal("/home/u/.zprofile", sh.Profile)

	require.NotEmpty(New("", "").Path)
}

func (s *ShellTestSuite) TestFindProfileUnknownShell() {
	s.Require().Empty(FindProfile("fish"))
}
