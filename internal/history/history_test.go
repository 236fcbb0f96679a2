package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndRecent(t *testing.T) {
	store := openTestStore(t)

	first := RunRecord{
		StartedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		Duration:    3200 * time.Millisecond,
		BuildDir:    "/proj/build",
		UnitsTotal:  120,
		UnitsFailed: 2,
		Compiler:    "gcc 14.2.1",
	}
	second := first
	second.StartedAt = first.StartedAt.Add(time.Hour)
	second.UnitsFailed = 0

	if err := store.Insert(first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(second); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent() returned %d runs, want 2", len(runs))
	}

	// Newest first.
	if !runs[0].StartedAt.Equal(second.StartedAt) {
		t.Errorf("Recent()[0].StartedAt = %v, want %v", runs[0].StartedAt, second.StartedAt)
	}
	got := runs[1]
	if got.Duration != first.Duration || got.BuildDir != first.BuildDir ||
		got.UnitsTotal != first.UnitsTotal || got.UnitsFailed != first.UnitsFailed ||
		got.Compiler != first.Compiler {
		t.Errorf("Recent()[1] = %+v, want fields of %+v", got, first)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		r := RunRecord{StartedAt: time.Now().UTC(), BuildDir: "/b", UnitsTotal: i}
		if err := store.Insert(r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("Recent(3) returned %d runs", len(runs))
	}
}

func TestRecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Recent() on empty store returned %d runs", len(runs))
	}
}
