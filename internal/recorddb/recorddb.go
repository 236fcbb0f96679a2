// Package recorddb defines the per-unit metric records collected from
// a build and their persisted on-disk form.
package recorddb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FormatVersion is bumped when the store layout changes shape.
const FormatVersion = 1

// StoreName is the conventional record store filename, resolved in the
// build directory.
const StoreName = ".ccperf"

// ErrNoRecordStore reports that no record store has been written yet,
// as opposed to one that exists but cannot be parsed.
var ErrNoRecordStore = errors.New("no record store found")

// Record holds the collected metrics for one translation unit. BytesPP,
// LinesPP and TimePP are zero together exactly when preprocessing was
// unsupported or failed for the unit.
type Record struct {
	File       string  `json:"file"`
	Bytes      int64   `json:"bytes"`
	Lines      int64   `json:"lines"`
	BytesPP    int64   `json:"bytes_pp"`
	LinesPP    int64   `json:"lines_pp"`
	HeadersAll int     `json:"headers_all"`
	HeadersSys int     `json:"headers_sys"`
	TimePP     float64 `json:"time_pp"`
	TimeRun    float64 `json:"time_run"`
}

// Database is the result of one full recording pass over a compile
// database. Records keep submission order, so repeated passes over an
// unchanged compile database serialize byte-identically apart from the
// timing fields (RecordedAt, TimePP, TimeRun).
type Database struct {
	Version    int      `json:"version"`
	RecordedAt string   `json:"recorded_at"`
	Compiler   string   `json:"compiler,omitempty"`
	Records    []Record `json:"records"`
}

// Save writes the database as indented JSON with a trailing newline.
// Key order follows the struct definitions, keeping the store
// human-diffable.
func Save(db *Database, path string) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record database: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write record store: %w", err)
	}
	return nil
}

// Load reads a previously recorded database. A missing file returns
// ErrNoRecordStore so the caller can point the user at the record
// mode. All fields, timing included, are taken verbatim from disk.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoRecordStore, path)
		}
		return nil, fmt.Errorf("read record store: %w", err)
	}

	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse record store %s: %w", path, err)
	}
	return &db, nil
}
