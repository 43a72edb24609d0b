package shell

import (
	"errors"
	"os"
)

// ProcessSpec describes one child-process invocation: the command, its
// arguments, and optional working directory and environment overrides.
// Specs are value types and are never mutated after construction.
type ProcessSpec struct {
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args,omitempty"`
	Dir     string            `yaml:"dir,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

func (s ProcessSpec) validate() error {
	if s.Command == "" {
		return errors.New("process spec has no command")
	}
	return nil
}

// Argv returns the command and its arguments as a single slice.
func (s ProcessSpec) Argv() []string {
	return append([]string{s.Command}, s.Args...)
}

// environ returns the inherited environment with the spec's overrides
// appended; later entries win on duplicate keys.
func (s ProcessSpec) environ() []string {
	env := os.Environ()
	for k, v := range s.Env {
		env = append(env, k+"="+v)
	}
	return env
}
