package preprocess

import "strings"

// DefaultSystemPrefixes mark headers supplied by the platform
// toolchain rather than the project under test.
var DefaultSystemPrefixes = []string{"/usr/", "/System/"}

// IsSystemHeader reports whether path lives under a known system
// include root. This is a path-prefix heuristic, not a definitive
// classification; projects with toolchains installed elsewhere extend
// the prefix list through their .ccperf.yaml config.
func IsSystemHeader(path string, extraPrefixes []string) bool {
	for _, prefix := range DefaultSystemPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, prefix := range extraPrefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
