// cmd/helpers.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/aceteam-ai/ccperf/internal/compiledb"
	"github.com/aceteam-ai/ccperf/internal/config"
	"github.com/aceteam-ai/ccperf/internal/transform"
)

// resolveBuildDir returns the absolute build directory, honoring --dir.
func resolveBuildDir() string {
	dir := buildDir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error resolving working directory: %v\n", err)
			os.Exit(1)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error resolving build directory %s: %v\n", dir, err)
		os.Exit(1)
	}
	return abs
}

// resolveStorePath returns the record store path, honoring --output and
// the project config override, in that order.
func resolveStorePath(dir string, cfg *config.Config) string {
	if storePath != "" {
		if filepath.IsAbs(storePath) {
			return storePath
		}
		return filepath.Join(dir, storePath)
	}
	return filepath.Join(dir, cfg.StoreName())
}

// loadConfigOrExit reads the optional project config from dir.
func loadConfigOrExit(dir string) *config.Config {
	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// diagnosticLog writes collection diagnostics to stderr, coloring
// failure lines so they stand out in long batches. Data output on
// stdout is never interleaved with these.
func diagnosticLog(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if strings.HasPrefix(msg, "FAIL:") {
		color.New(color.FgRed).Fprintln(os.Stderr, msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// probeToolchain identifies the first supported driver in the compile
// database and asks it for its version, for the record store header.
func probeToolchain(units []compiledb.CompileUnit, extraMarkers []string) string {
	for _, u := range units {
		argv, err := transform.Split(u.Command)
		if err != nil || !transform.Supported(argv, extraMarkers) {
			continue
		}
		name := transform.DriverName(argv)
		if v := transform.ProbeVersion(argv[0], u.Directory); v != "" {
			return name + " " + v
		}
		return name
	}
	return ""
}

// historyPath returns the run-ledger location under the user's home
// directory, creating the parent directory as needed.
func historyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".ccperf")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}
