package transform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		extra []string
		want  bool
	}{
		{"plain gcc", []string{"gcc", "-c", "x.c"}, nil, true},
		{"full path g++", []string{"/usr/bin/g++", "-c", "x.cpp"}, nil, true},
		{"versioned clang", []string{"clang++-17", "-c", "x.cpp"}, nil, true},
		{"cross toolchain gcc", []string{"arm-none-eabi-gcc", "-c", "x.c"}, nil, true},
		{"bare cc", []string{"cc", "-c", "x.c"}, nil, true},
		{"cross toolchain cc", []string{"/opt/cross/bin/mips-linux-gnu-cc", "-c", "x.c"}, nil, true},
		{"case folded with exe suffix", []string{"GCC.EXE", "-c", "x.c"}, nil, true},
		{"python is not a compiler", []string{"python3", "gen.py"}, nil, false},
		{"linker is not a compiler", []string{"ld", "-o", "a.out"}, nil, false},
		{"rustc does not match cc", []string{"rustc", "main.rs"}, nil, false},
		{"extra marker recognized", []string{"icx", "-c", "x.c"}, []string{"icx"}, true},
		{"empty argv", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supported(tt.argv, tt.extra); got != tt.want {
				t.Errorf("Supported(%v) = %v, want %v", tt.argv, got, tt.want)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if got := DriverName([]string{"/usr/local/bin/clang", "-c"}); got != "clang" {
		t.Errorf("DriverName() = %q, want %q", got, "clang")
	}
	if got := DriverName(nil); got != "" {
		t.Errorf("DriverName(nil) = %q, want empty", got)
	}
}

func TestProbeVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell-script driver stub")
	}

	dir := t.TempDir()
	driver := filepath.Join(dir, "fakecc")
	if err := os.WriteFile(driver, []byte("#!/bin/sh\necho 14.2.1\n"), 0755); err != nil {
		t.Fatalf("write driver stub: %v", err)
	}

	if got := ProbeVersion(driver, dir); got != "14.2.1" {
		t.Errorf("ProbeVersion() = %q, want %q", got, "14.2.1")
	}
}

func TestProbeVersionMissingDriver(t *testing.T) {
	dir := t.TempDir()
	if got := ProbeVersion(filepath.Join(dir, "no-such-driver"), dir); got != "" {
		t.Errorf("ProbeVersion() = %q, want empty for missing driver", got)
	}
}
