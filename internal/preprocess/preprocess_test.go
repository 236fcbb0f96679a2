package preprocess

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// fakeCompiler returns an Exec stub that writes content to the -o
// target and replies with trace on its combined output, remembering
// the argv it was handed.
func fakeCompiler(content, trace string, gotArgv *[]string) func(string, []string) ([]byte, error) {
	return func(dir string, argv []string) ([]byte, error) {
		*gotArgv = argv
		for i, a := range argv {
			if a == "-o" && i+1 < len(argv) {
				if err := os.WriteFile(argv[i+1], []byte(content), 0644); err != nil {
					return nil, err
				}
			}
		}
		return []byte(trace), nil
	}
}

func TestExecutorRun(t *testing.T) {
	var gotArgv []string
	e := &Executor{Exec: fakeCompiler("line one\nline two\n", ". /usr/include/stdio.h\n", &gotArgv)}

	res, trace, err := e.Run([]string{"gcc", "-c", "-o", "out.o", "main.c"}, t.TempDir())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !res.Measured {
		t.Error("Run() result not marked as measured")
	}
	if res.Bytes != 18 {
		t.Errorf("Run() bytes = %d, want 18", res.Bytes)
	}
	if res.Lines != 2 {
		t.Errorf("Run() lines = %d, want 2", res.Lines)
	}
	if res.Duration < 0 {
		t.Errorf("Run() duration = %v, want >= 0", res.Duration)
	}
	if trace != ". /usr/include/stdio.h\n" {
		t.Errorf("Run() trace = %q", trace)
	}

	// The invocation must have been rewritten into preprocessing form.
	if !slices.Contains(gotArgv, "-E") || slices.Contains(gotArgv, "-c") {
		t.Errorf("Run() did not rewrite -c to -E: %v", gotArgv)
	}
	if gotArgv[len(gotArgv)-1] != "-H" {
		t.Errorf("Run() did not append -H: %v", gotArgv)
	}
}

func TestExecutorRunRemovesScratchFile(t *testing.T) {
	var gotArgv []string
	e := &Executor{Exec: fakeCompiler("x\n", "", &gotArgv)}

	if _, _, err := e.Run([]string{"gcc", "-c", "-o", "out.o", "main.c"}, t.TempDir()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	i := slices.Index(gotArgv, "-o")
	if i < 0 || i+1 >= len(gotArgv) {
		t.Fatalf("no -o argument in %v", gotArgv)
	}
	if _, err := os.Stat(gotArgv[i+1]); !os.IsNotExist(err) {
		t.Errorf("scratch file %s still exists after Run()", gotArgv[i+1])
	}
}

func TestExecutorRunInvocationFailure(t *testing.T) {
	e := &Executor{Exec: func(dir string, argv []string) ([]byte, error) {
		return []byte("main.c:1:10: fatal error: nope.h: No such file\n"), errors.New("exit status 1")
	}}

	res, trace, err := e.Run([]string{"gcc", "-c", "-o", "out.o", "main.c"}, t.TempDir())
	if err == nil {
		t.Fatal("Run() expected error for failing invocation")
	}
	if res.Measured || res.Bytes != 0 || res.Lines != 0 || res.Duration != 0 {
		t.Errorf("Run() result = %+v, want zero result on failure", res)
	}
	if trace == "" {
		t.Error("Run() dropped the captured output on failure")
	}
}

func TestExecutorRunMissingOutput(t *testing.T) {
	// Succeeds but never writes the scratch file.
	e := &Executor{Exec: func(dir string, argv []string) ([]byte, error) {
		return nil, nil
	}}

	res, _, err := e.Run([]string{"gcc", "-c", "-o", "out.o", "main.c"}, t.TempDir())
	if err == nil {
		t.Fatal("Run() expected error for missing preprocessed output")
	}
	if res.Measured {
		t.Errorf("Run() result = %+v, want unmeasured on missing output", res)
	}
}

func TestMeasureFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantBytes int64
		wantLines int64
	}{
		{"empty", "", 0, 0},
		{"trailing newline", "a\nb\n", 4, 2},
		{"no trailing newline", "a\nb\nc", 5, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "f")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			bytes, lines, err := MeasureFile(path)
			if err != nil {
				t.Fatalf("MeasureFile() error = %v", err)
			}
			if bytes != tt.wantBytes || lines != tt.wantLines {
				t.Errorf("MeasureFile() = (%d, %d), want (%d, %d)",
					bytes, lines, tt.wantBytes, tt.wantLines)
			}
		})
	}
}
