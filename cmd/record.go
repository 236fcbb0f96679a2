// cmd/record.go
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aceteam-ai/ccperf/internal/collect"
	"github.com/aceteam-ai/ccperf/internal/compiledb"
	"github.com/aceteam-ai/ccperf/internal/history"
	"github.com/aceteam-ai/ccperf/internal/recorddb"
)

var (
	recordJobs      int
	recordTimeBuild bool
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Replay the compile database and record per-unit metrics",
	Long: `Reads compile_commands.json from the build directory, replays each
translation unit's compiler invocation in preprocessing-only mode
across a worker pool, and writes the collected metrics to the record
store. The store is rebuilt from scratch on every run.

Examples:
  # Record metrics using the default worker pool size
  ccperf record

  # Also time the real, unmodified compile of every unit
  ccperf record --time-build

  # Record a different build tree with 4 workers
  ccperf record --dir build/release --jobs 4`,
	Run: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) {
	dir := resolveBuildDir()
	cfg := loadConfigOrExit(dir)

	units, err := compiledb.Load(filepath.Join(dir, compiledb.FileName))
	if err != nil {
		if errors.Is(err, compiledb.ErrNoDatabase) {
			fmt.Fprintf(os.Stderr, "❌ Could not find %s in %s.\n", compiledb.FileName, dir)
			fmt.Fprintf(os.Stderr, "Generate one with your build system (e.g. cmake -DCMAKE_EXPORT_COMPILE_COMMANDS=ON) and retry.\n")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		}
		os.Exit(1)
	}

	jobs := recordJobs
	if jobs <= 0 {
		jobs = cfg.Jobs
	}
	Debug("recording %d units with jobs=%d time-build=%v", len(units), jobs, recordTimeBuild)

	start := time.Now()
	db, failed := collect.Run(units, collect.Options{
		Jobs:            jobs,
		TimeBuild:       recordTimeBuild,
		SystemPrefixes:  cfg.SystemPrefixes,
		CompilerMarkers: cfg.CompilerMarkers,
		Log:             diagnosticLog,
	})
	db.Compiler = probeToolchain(units, cfg.CompilerMarkers)

	path := resolveStorePath(dir, cfg)
	if err := recorddb.Save(db, path); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}

	recordHistory(history.RunRecord{
		StartedAt:   start,
		Duration:    time.Since(start),
		BuildDir:    dir,
		UnitsTotal:  len(units),
		UnitsFailed: failed,
		Compiler:    db.Compiler,
	})

	color.New(color.FgGreen).Fprintf(os.Stderr, "✅ Recorded %d/%d units to %s\n", len(db.Records), len(units), path)
	if failed > 0 {
		color.New(color.FgYellow).Fprintf(os.Stderr, "⚠️  %d units failed; see diagnostics above\n", failed)
	}
}

// recordHistory appends the run summary to the local ledger. The ledger
// is best-effort: problems are warnings, never failures.
func recordHistory(r history.RunRecord) {
	path, err := historyPath()
	if err != nil {
		Debug("history ledger unavailable: %v", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not open run history: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.Insert(r); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not record run history: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().IntVar(&recordJobs, "jobs", 0, "worker pool size (default is 2x the logical CPU count)")
	recordCmd.Flags().BoolVar(&recordTimeBuild, "time-build", false, "also run each original command to measure real compile time")
}
