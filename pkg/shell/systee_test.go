package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSysTee(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	tee, err := NewSysTee(path)
	require.NoError(t, err)
	fmt.Fprintln(tee.Stdout, "to stdout")
	fmt.Fprintln(tee.Stderr, "to stderr")
	require.NoError(t, tee.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "to stdout\nto stderr\n", string(data))
}

func TestSysTeeAppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	for _, line := range []string{"first", "second"} {
		tee, err := NewSysTee(path)
		require.NoError(t, err)
		fmt.Fprintln(tee.Stdout, line)
		require.NoError(t, tee.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(data))
}
