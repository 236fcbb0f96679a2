package preprocess

import (
	"path/filepath"
	"regexp"
	"strings"
)

// traceLine matches one entry of a -H inclusion trace: the nesting
// depth as leading periods, a space, then the header path.
var traceLine = regexp.MustCompile(`^\.+ `)

// ParseTrace extracts the set of headers named by a header-inclusion
// trace. Lines without the dot-depth marker are ordinary preprocessor
// diagnostics and are skipped. Relative paths are resolved against
// dir; the result is deduplicated, order carries no meaning.
func ParseTrace(trace, dir string) map[string]struct{} {
	headers := make(map[string]struct{})
	for _, line := range strings.Split(trace, "\n") {
		if !traceLine.MatchString(line) {
			continue
		}
		name := strings.TrimSpace(line[strings.Index(line, " ")+1:])
		if name == "" {
			continue
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		headers[filepath.Clean(name)] = struct{}{}
	}
	return headers
}
