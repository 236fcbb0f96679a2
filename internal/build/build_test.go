package build

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTime(t *testing.T) {
	var gotDir string
	var gotArgv []string
	r := &Runner{Exec: func(dir string, argv []string) ([]byte, error) {
		gotDir = dir
		gotArgv = argv
		return []byte("ignored on success"), nil
	}}

	d, err := r.Time("gcc -c main.c -o main.o", "/work")
	if err != nil {
		t.Fatalf("Time() error = %v", err)
	}
	if d < 0 {
		t.Errorf("Time() duration = %v, want >= 0", d)
	}
	if gotDir != "/work" {
		t.Errorf("Time() dir = %q, want %q", gotDir, "/work")
	}

	// The original command must run unmodified, under a shell.
	want := []string{"sh", "-c", "gcc -c main.c -o main.o"}
	if !reflect.DeepEqual(gotArgv, want) {
		t.Errorf("Time() argv = %v, want %v", gotArgv, want)
	}
}

func TestTimeFailureSurfacesOutput(t *testing.T) {
	r := &Runner{Exec: func(dir string, argv []string) ([]byte, error) {
		return []byte("main.c:3: error: expected ';'\n"), errors.New("exit status 1")
	}}

	_, err := r.Time("gcc -c main.c", "/work")
	if err == nil {
		t.Fatal("Time() expected error")
	}
	if !strings.Contains(err.Error(), "expected ';'") {
		t.Errorf("Time() error %q does not carry compiler output", err)
	}
}
