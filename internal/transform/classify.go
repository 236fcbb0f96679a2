package transform

import (
	"path/filepath"
	"strings"
)

// DefaultMarkers are the driver-name fragments recognized as compilers
// that understand GCC-style preprocessing flags.
var DefaultMarkers = []string{"gcc", "g++", "clang", "cc", "c++"}

// Supported reports whether argv invokes a compiler family whose
// preprocessing flags PreprocessOnly understands. Unsupported drivers
// are not an error; the caller records an unmeasured result instead.
func Supported(argv []string, extraMarkers []string) bool {
	if len(argv) == 0 {
		return false
	}
	name := strings.ToLower(filepath.Base(argv[0]))
	name = strings.TrimSuffix(name, ".exe")

	for _, marker := range DefaultMarkers {
		if matches(name, marker) {
			return true
		}
	}
	for _, marker := range extraMarkers {
		if marker != "" && matches(name, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// matches applies the driver-name heuristic. Short markers like "cc"
// only match as the whole name or a cross-toolchain suffix
// (arm-none-eabi-cc); longer ones are distinctive enough for a
// substring match (gcc-12, clang++-17).
func matches(name, marker string) bool {
	if name == marker || strings.HasSuffix(name, "-"+marker) {
		return true
	}
	return len(marker) >= 3 && strings.Contains(name, marker)
}

// DriverName returns the basename of the invoked program, for display
// and for the record store header.
func DriverName(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	return filepath.Base(argv[0])
}
