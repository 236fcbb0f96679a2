// Package report renders a record database as a table.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aceteam-ai/ccperf/internal/recorddb"
)

// Columns is the fixed field order of the report, matching the record
// store layout. Raw output emits exactly these names as the header.
var Columns = []string{
	"file", "bytes", "lines", "bytes_pp", "lines_pp",
	"headers_all", "headers_sys", "time_pp", "time_run",
}

// Write renders db to w, a header row followed by one row per record.
// Raw mode emits tab-separated values, the stable data contract for
// scripts; pretty mode aligns columns for humans.
func Write(w io.Writer, db *recorddb.Database, pretty bool) error {
	if pretty {
		return writePretty(w, db)
	}
	return writeRaw(w, db)
}

func writeRaw(w io.Writer, db *recorddb.Database) error {
	if _, err := fmt.Fprintln(w, strings.Join(Columns, "\t")); err != nil {
		return err
	}
	for _, r := range db.Records {
		if _, err := fmt.Fprintln(w, strings.Join(row(r), "\t")); err != nil {
			return err
		}
	}
	return nil
}

func writePretty(w io.Writer, db *recorddb.Database) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(Columns, "\t")))
	fmt.Fprintln(tw, dashes())
	for _, r := range db.Records {
		fmt.Fprintln(tw, strings.Join(row(r), "\t"))
	}
	return tw.Flush()
}

func dashes() string {
	parts := make([]string, len(Columns))
	for i, c := range Columns {
		parts[i] = strings.Repeat("-", len(c))
	}
	return strings.Join(parts, "\t")
}

func row(r recorddb.Record) []string {
	return []string{
		r.File,
		strconv.FormatInt(r.Bytes, 10),
		strconv.FormatInt(r.Lines, 10),
		strconv.FormatInt(r.BytesPP, 10),
		strconv.FormatInt(r.LinesPP, 10),
		strconv.Itoa(r.HeadersAll),
		strconv.Itoa(r.HeadersSys),
		strconv.FormatFloat(r.TimePP, 'f', 3, 64),
		strconv.FormatFloat(r.TimeRun, 'f', 3, 64),
	}
}
