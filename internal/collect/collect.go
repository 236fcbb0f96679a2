// Package collect gathers per-unit build metrics across a compile
// database using a bounded worker pool.
package collect

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/aceteam-ai/ccperf/internal/build"
	"github.com/aceteam-ai/ccperf/internal/compiledb"
	"github.com/aceteam-ai/ccperf/internal/preprocess"
	"github.com/aceteam-ai/ccperf/internal/recorddb"
	"github.com/aceteam-ai/ccperf/internal/transform"
)

// Options configures a recording pass.
type Options struct {
	// Jobs is the worker pool size; values <= 0 select DefaultJobs().
	Jobs int

	// TimeBuild re-runs each original command to measure real compile
	// time. Off by default; TimeRun stays 0.0 ("not measured") then.
	TimeBuild bool

	// SystemPrefixes extends the system-header prefix heuristic.
	SystemPrefixes []string

	// CompilerMarkers extends the recognized compiler-family names.
	CompilerMarkers []string

	// Log receives progress and per-unit diagnostics. It must be safe
	// for concurrent use; the default writes lines to stderr.
	Log func(format string, args ...any)

	// Preprocess and Build default to real process execution; tests
	// inject fakes.
	Preprocess *preprocess.Executor
	Build      *build.Runner
}

// DefaultJobs derives the worker pool size from host parallelism. The
// pool is oversubscribed 2x: workers spend most of their time waiting
// on compiler processes, not burning CPU themselves.
func DefaultJobs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return n * 2
}

type collector struct {
	opts Options
	pp   *preprocess.Executor
	bld  *build.Runner
}

// Run collects metrics for every unit and folds the successes into a
// record database in submission order. A failing unit is logged and
// excluded; no single unit aborts the batch.
func Run(units []compiledb.CompileUnit, opts Options) (*recorddb.Database, int) {
	c := &collector{opts: opts, pp: opts.Preprocess, bld: opts.Build}
	if c.pp == nil {
		c.pp = preprocess.NewExecutor()
	}
	if c.bld == nil {
		c.bld = build.NewRunner()
	}
	if c.opts.Log == nil {
		c.opts.Log = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = DefaultJobs()
	}
	if jobs > len(units) && len(units) > 0 {
		jobs = len(units)
	}

	type outcome struct {
		record recorddb.Record
		err    error
	}

	// Workers write each outcome to its own slot, so submission order
	// survives out-of-order completion without extra locking.
	results := make([]outcome, len(units))
	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				rec, err := c.unit(units[i])
				results[i] = outcome{record: rec, err: err}
			}
		}()
	}

	for i := range units {
		c.opts.Log("%s", units[i].File)
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	db := &recorddb.Database{
		Version:    recorddb.FormatVersion,
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
		Records:    []recorddb.Record{},
	}
	failed := 0
	for _, out := range results {
		if out.err != nil {
			failed++
			c.opts.Log("FAIL: %v", out.err)
			continue
		}
		db.Records = append(db.Records, out.record)
	}
	return db, failed
}

// unit assembles one metric record. Errors returned from here are
// unrecoverable for the unit (the record is dropped); recoverable
// problems degrade to the unmeasured zero result instead.
func (c *collector) unit(u compiledb.CompileUnit) (recorddb.Record, error) {
	src := u.AbsFile()

	argv, err := transform.Split(u.Command)
	if err != nil {
		return recorddb.Record{}, fmt.Errorf("%s: %w", src, err)
	}

	bytes, lines, err := preprocess.MeasureFile(src)
	if err != nil {
		return recorddb.Record{}, fmt.Errorf("%s: measure source: %w", src, err)
	}

	var res preprocess.Result
	var headers map[string]struct{}
	if transform.Supported(argv, c.opts.CompilerMarkers) {
		r, trace, err := c.pp.Run(argv, u.Directory)
		if err != nil {
			// Degrade to the unmeasured sentinel and keep going;
			// the unit still gets a record.
			c.opts.Log("FAIL: %s: %v", src, err)
		} else {
			res = r
			headers = preprocess.ParseTrace(trace, u.Directory)
		}
	}

	headersAll := len(headers)
	headersSys := 0
	for h := range headers {
		if preprocess.IsSystemHeader(h, c.opts.SystemPrefixes) {
			headersSys++
		}
	}

	var timeRun float64
	if c.opts.TimeBuild {
		d, err := c.bld.Time(u.Command, u.Directory)
		if err != nil {
			c.opts.Log("FAIL: %s: %v", src, err)
		} else {
			timeRun = d.Seconds()
		}
	}

	return recorddb.Record{
		File:       src,
		Bytes:      bytes,
		Lines:      lines,
		BytesPP:    res.Bytes,
		LinesPP:    res.Lines,
		HeadersAll: headersAll,
		HeadersSys: headersSys,
		TimePP:     res.Duration.Seconds(),
		TimeRun:    timeRun,
	}, nil
}
