// cmd/report.go
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aceteam-ai/ccperf/internal/recorddb"
	"github.com/aceteam-ai/ccperf/internal/report"
)

var (
	reportPretty bool
	reportRaw    bool
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the recorded metrics as a table",
	Long: `Loads the record store written by 'ccperf record' and prints one row
per translation unit. Output is an aligned table on a terminal and
raw tab-separated values otherwise; --pretty and --raw force either
mode.`,
	Run: runReport,
}

func runReport(cmd *cobra.Command, args []string) {
	dir := resolveBuildDir()
	cfg := loadConfigOrExit(dir)

	path := resolveStorePath(dir, cfg)
	db, err := recorddb.Load(path)
	if err != nil {
		if errors.Is(err, recorddb.ErrNoRecordStore) {
			fmt.Fprintf(os.Stderr, "❌ No record store found at %s.\n", path)
			fmt.Fprintf(os.Stderr, "Run 'ccperf record' first.\n")
		} else {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		}
		os.Exit(1)
	}
	Debug("loaded %d records from %s", len(db.Records), path)

	pretty := term.IsTerminal(int(os.Stdout.Fd()))
	if reportPretty {
		pretty = true
	}
	if reportRaw {
		pretty = false
	}

	if err := report.Write(os.Stdout, db, pretty); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error writing report: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportPretty, "pretty", false, "force the aligned human-readable table")
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "force raw tab-separated output")
}
