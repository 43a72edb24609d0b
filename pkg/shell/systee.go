package shell

import (
	"io"
	"os"
)

// SysTee mirrors the current process's standard output and error into an
// append-mode log file while keeping them visible on the terminal. Write
// through Stdout and Stderr instead of os.Stdout/os.Stderr while the tee
// is open.
type SysTee struct {
	logfile *os.File

	Stdout io.Writer
	Stderr io.Writer
}

func NewSysTee(logPath string) (*SysTee, error) {
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &SysTee{
		logfile: f,
		Stdout:  io.MultiWriter(os.Stdout, f),
		Stderr:  io.MultiWriter(os.Stderr, f),
	}, nil
}

// Close releases the log file. The Stdout and Stderr writers must not be
// used afterwards.
func (t *SysTee) Close() error {
	return t.logfile.Close()
}
