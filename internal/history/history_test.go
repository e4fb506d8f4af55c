package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"))
}

func testEntry(desc string) Entry {
	return Entry{
		Timestamp:   time.Now(),
		Description: desc,
		Command:     "ls -la",
		Explanation: "lists files",
	}
}

func TestEntriesMissingFile(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history for missing file, got %d entries", len(entries))
	}
}

func TestAppendAndList(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEntry("first")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(testEntry("second")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Description != "first" || entries[1].Description != "second" {
		t.Errorf("Entries out of order: %q, %q", entries[0].Description, entries[1].Description)
	}
}

func TestAppendEnforcesLimit(t *testing.T) {
	store := newTestStore(t)
	store.maxEntries = 100

	for i := 0; i < 101; i++ {
		if err := store.Append(testEntry(fmt.Sprintf("entry-%d", i))); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 100 {
		t.Fatalf("Expected 100 entries after 101 appends, got %d", len(entries))
	}
	// The oldest entry must have been evicted.
	if entries[0].Description != "entry-1" {
		t.Errorf("Expected oldest surviving entry to be entry-1, got %s", entries[0].Description)
	}
	if entries[99].Description != "entry-100" {
		t.Errorf("Expected newest entry to be entry-100, got %s", entries[99].Description)
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	if err := store.Append(testEntry("doomed")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("Clear should remove the history file")
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries after clear failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history after clear, got %d entries", len(entries))
	}
}

func TestClearMissingFile(t *testing.T) {
	store := newTestStore(t)
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing file should not fail: %v", err)
	}
}

func TestCorruptFileYieldsEmpty(t *testing.T) {
	store := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries failed on corrupt file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Corrupt history should yield empty list, got %d entries", len(entries))
	}
}
