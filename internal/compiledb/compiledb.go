// Package compiledb reads the de-facto compile_commands.json database
// emitted by CMake, Ninja, Bear and friends.
package compiledb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the conventional database filename, resolved in the build
// directory.
const FileName = "compile_commands.json"

// ErrNoDatabase reports a missing compile database.
var ErrNoDatabase = errors.New("compile database not found")

// CompileUnit is one translation unit's recorded compiler invocation.
// Entries may carry either a single "command" string or an "arguments"
// array; Load normalizes the latter into Command.
type CompileUnit struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command"`
	Arguments []string `json:"arguments,omitempty"`
}

// AbsFile resolves the unit's source file against its build directory.
func (u CompileUnit) AbsFile() string {
	if filepath.IsAbs(u.File) {
		return filepath.Clean(u.File)
	}
	return filepath.Join(u.Directory, u.File)
}

// Load reads and normalizes the compile database at path. A missing
// file returns ErrNoDatabase so callers can give setup guidance.
func Load(path string) ([]CompileUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNoDatabase, path)
		}
		return nil, fmt.Errorf("read compile database: %w", err)
	}

	var units []CompileUnit
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i := range units {
		if units[i].Command == "" && len(units[i].Arguments) > 0 {
			units[i].Command = joinCommand(units[i].Arguments)
		}
	}
	return units, nil
}

// joinCommand renders an argv list back into a shell command string,
// quoting arguments that would not survive word splitting.
func joinCommand(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$&|;<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
