package shell

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Batch is an ordered list of steps run through one Shell. Steps always
// all run; a failing step shows up in the summary instead of aborting the
// batch, so diagnostic output from every step is preserved.
type Batch struct {
	Title string `yaml:"title"`
	// Ignore lists substrings that make stderr output harmless: a step
	// whose stderr contains any of them is not counted as failed.
	Ignore []string `yaml:"ignore,omitempty"`
	Steps  []Step   `yaml:"steps"`
}

// Step is one batch entry: either a script line run through the shell, or
// an explicit command spec run directly. Exactly one of the two forms must
// be set.
type Step struct {
	Name        string `yaml:"name"`
	Script      string `yaml:"script,omitempty"`
	ProcessSpec `yaml:",inline"`
}

func (s Step) validate() error {
	if s.Name == "" {
		return fmt.Errorf("step has no name")
	}
	if s.Script == "" && s.Command == "" {
		return fmt.Errorf("step %q has neither script nor command", s.Name)
	}
	if s.Script != "" && s.Command != "" {
		return fmt.Errorf("step %q has both script and command", s.Name)
	}
	return nil
}

// LoadBatch reads a batch definition from a YAML file. Unknown fields are
// rejected so typos in step definitions fail loudly.
func LoadBatch(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(b.Steps) == 0 {
		return nil, fmt.Errorf("parse %s: batch has no steps", path)
	}
	for _, st := range b.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return &b, nil
}

// Run executes every step in order and collects its results. The same
// RunOptions feed every step; register Synced sinks when sharing one sink
// across both streams.
func (b *Batch) Run(ctx context.Context, sh *Shell, opts RunOptions) []StepResult {
	results := make([]StepResult, 0, len(b.Steps))
	for _, st := range b.Steps {
		var (
			res Result
			err error
		)
		if st.Script != "" {
			res, err = sh.RunScript(ctx, st.Script, opts)
		} else {
			res, err = sh.Run(ctx, st.ProcessSpec, opts)
		}
		results = append(results, StepResult{Name: st.Name, Result: res, Err: err})
	}
	return results
}
