// Package build re-runs the original, unmodified compile command to
// measure true compilation time.
package build

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner times real compile commands.
type Runner struct {
	// Exec runs the command with combined output capture; tests
	// replace it.
	Exec func(dir string, argv []string) ([]byte, error)
}

// NewRunner returns a Runner backed by real process execution.
func NewRunner() *Runner {
	return &Runner{Exec: runCombined}
}

func runCombined(dir string, argv []string) ([]byte, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Time executes the unmodified command in dir through the shell and
// returns its elapsed wall time. Output is discarded on success; on
// failure it is folded into the returned error so the diagnostic can
// surface what the compiler said.
func (r *Runner) Time(command, dir string) (time.Duration, error) {
	start := time.Now()
	out, err := r.Exec(dir, []string{"sh", "-c", command})
	elapsed := time.Since(start)

	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return 0, fmt.Errorf("build failed: %w\n%s", err, msg)
		}
		return 0, fmt.Errorf("build failed: %w", err)
	}
	return elapsed, nil
}
