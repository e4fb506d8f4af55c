package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/54yyyu/yo-cmd/internal/config"
)

// Entry represents a single generated command in the history.
type Entry struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Command     string    `json:"command"`
	Explanation string    `json:"explanation"`
}

// Store persists history entries as a JSON array, capped at a maximum
// number of entries (oldest evicted first).
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{
		path:       path,
		maxEntries: config.DefaultMaxHistorySize,
	}
}

// NewDefaultStore creates a store at the standard history location.
func NewDefaultStore() (*Store, error) {
	path, err := config.GetHistoryPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Entries returns the stored entries, oldest first. A missing file
// yields an empty list.
func (s *Store) Entries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Append adds an entry and truncates to the most recent maxEntries.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}
	return s.write(entries)
}

// Clear removes the history file. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt history file should not wedge the CLI; start fresh.
		return []Entry{}, nil
	}
	return entries, nil
}

func (s *Store) write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
