package shell

import (
	"fmt"
	"io"
	"strings"
)

// StepResult pairs a batch step's name with its run outcome. Err carries a
// *SpawnError or *WaitError when the step could not run or be waited on.
type StepResult struct {
	Name string
	Result
	Err error
}

// Failed applies the summary rule: a step fails when it could not run at
// all, wrote to stderr without every ignore check clearing it, or printed
// "Error" on stdout.
func (r StepResult) Failed(ignores []string) bool {
	if r.Err != nil || !r.Ok() {
		return true
	}
	if r.Stderr != "" {
		for _, ignore := range ignores {
			if ignore != "" && strings.Contains(r.Stderr, ignore) {
				return strings.Contains(r.Stdout, "Error")
			}
		}
		return true
	}
	return strings.Contains(r.Stdout, "Error")
}

// Summarize writes a per-step pass/fail report with a success-rate footer
// and returns the number of failed steps.
func Summarize(w io.Writer, title string, results []StepResult, ignores []string) int {
	total := len(results)
	failures := 0
	fmt.Fprintf(w, "\n%d %s:\n", total, title)
	for i, r := range results {
		symbol := "✅"
		if r.Failed(ignores) {
			symbol = "❌"
			failures++
		}
		fmt.Fprintf(w, "%s %d/%d: %s\n", symbol, i+1, total, r.Name)
	}
	percentOK := 0.0
	if total > 0 {
		percentOK = float64(total-failures) / float64(total) * 100
	}
	fmt.Fprintf(w, "\n✅ %d/%d (%.1f%%), ❌ %d/%d (%.1f%%)\n",
		total-failures, total, percentOK, failures, total, 100-percentOK)
	return failures
}
