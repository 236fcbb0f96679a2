// Package transform rewrites recorded compiler invocations into
// preprocessing-only form and decides which invocations are safe to
// rewrite at all.
package transform

import (
	"fmt"

	"github.com/google/shlex"
)

// Flags that switch GCC-style drivers into dependency-generation mode.
// They change what the -E run produces, so they are stripped.
var dropFlags = map[string]bool{
	"-M":   true,
	"-MM":  true,
	"-MG":  true,
	"-MP":  true,
	"-MD":  true,
	"-MMD": true,
}

// Dependency flags that consume the following token as an argument.
var dropFlagsWithArg = map[string]bool{
	"-MF": true,
	"-MT": true,
	"-MQ": true,
}

// Split tokenizes a shell-style command string under POSIX quoting
// rules. Malformed quoting is a per-unit parse failure for the caller
// to report; it never brings down a batch.
func Split(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("tokenize command: %w", err)
	}
	return argv, nil
}

// PreprocessOnly returns a copy of argv rewritten to run only the
// preprocessor: -c becomes -E, the -o argument is pointed at outPath,
// dependency-generation flags are dropped, and -H is appended so the
// driver prints its header-inclusion trace. The scan runs from the end
// of the list toward the front so removals keep index validity; the
// program token itself is never rewritten.
func PreprocessOnly(argv []string, outPath string) []string {
	opts := make([]string, len(argv))
	copy(opts, argv)

	for i := len(opts) - 1; i >= 1; i-- {
		switch opt := opts[i]; {
		case opt == "":
			opts = append(opts[:i], opts[i+1:]...)
		case opt == "-c":
			opts[i] = "-E"
		case opt == "-o" && i+1 < len(opts):
			opts[i+1] = outPath
		case dropFlags[opt]:
			opts = append(opts[:i], opts[i+1:]...)
		case dropFlagsWithArg[opt] && i+1 < len(opts):
			opts = append(opts[:i], opts[i+2:]...)
		}
	}

	return append(opts, "-H")
}
