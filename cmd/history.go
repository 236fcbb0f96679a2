// cmd/history.go
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aceteam-ai/ccperf/internal/history"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent recording passes",
	Long: `Lists recent 'ccperf record' runs from the local ledger: when they
ran, how long collection took, and how many units failed.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := historyPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error locating run history: %v\n", err)
			os.Exit(1)
		}
		store, err := history.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error opening run history: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.Recent(historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error reading run history: %v\n", err)
			os.Exit(1)
		}

		if len(runs) == 0 {
			fmt.Println("🤷 No recorded runs yet. Run 'ccperf record' first.")
			return
		}

		// Use a tabwriter for nicely formatted, aligned columns
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STARTED\tDURATION\tUNITS\tFAILED\tCOMPILER\tBUILD DIR")
		fmt.Fprintln(w, "-------\t--------\t-----\t------\t--------\t---------")

		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Duration.Round(time.Millisecond),
				r.UnitsTotal, r.UnitsFailed, r.Compiler, r.BuildDir)
		}

		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
}
