// Package preprocess runs preprocessing-only compiler invocations and
// extracts size, line-count and header-inclusion metrics from them.
package preprocess

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aceteam-ai/ccperf/internal/transform"
)

// Result holds the measurements taken from one preprocessing run.
// Measured distinguishes "preprocessing ran and produced this output"
// from "not measured": an unsupported or failed unit yields the zero
// Result, which is never confused with a genuinely empty output file.
type Result struct {
	Measured bool
	Bytes    int64
	Lines    int64
	Duration time.Duration
}

// Executor measures preprocessing-only invocations. Each Run creates
// its own scratch file, so executors are safe to share across workers.
type Executor struct {
	// Exec runs the external command in dir with combined
	// stdout/stderr capture; tests replace it.
	Exec func(dir string, argv []string) ([]byte, error)
}

// NewExecutor returns an Executor backed by real process execution.
func NewExecutor() *Executor {
	return &Executor{Exec: runCombined}
}

func runCombined(dir string, argv []string) ([]byte, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Run rewrites argv into preprocessing-only form, executes it in dir,
// and measures the generated output. The returned trace is the
// driver's combined stdout/stderr, which carries the -H header listing
// even when the invocation itself fails. The scratch file is removed
// on every exit path. Wall time covers the invocation only, not the
// file measurement that follows it.
func (e *Executor) Run(argv []string, dir string) (Result, string, error) {
	scratch := filepath.Join(os.TempDir(), fmt.Sprintf("ccperf-%s.i", uuid.NewString()))
	defer os.Remove(scratch)

	opts := transform.PreprocessOnly(argv, scratch)

	start := time.Now()
	out, err := e.Exec(dir, opts)
	elapsed := time.Since(start)

	trace := string(out)
	if err != nil {
		return Result{}, trace, fmt.Errorf("preprocess: %w", err)
	}

	bytes, lines, err := MeasureFile(scratch)
	if err != nil {
		return Result{}, trace, fmt.Errorf("preprocessed output: %w", err)
	}

	return Result{Measured: true, Bytes: bytes, Lines: lines, Duration: elapsed}, trace, nil
}

// MeasureFile returns the byte and line count of the file at path. A
// trailing line without a newline still counts as a line.
func MeasureFile(path string) (bytes int64, lines int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	// Preprocessed output can carry very long lines, so read through a
	// plain buffered reader instead of a scanner with its token limit.
	r := bufio.NewReader(f)
	for {
		chunk, err := r.ReadString('\n')
		if len(chunk) > 0 {
			lines++
		}
		if err == io.EOF {
			return info.Size(), lines, nil
		}
		if err != nil {
			return 0, 0, err
		}
	}
}
