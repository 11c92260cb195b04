// Package store owns the habit data model and its durable persistence: the
// whole application state lives in one JSON document that is rewritten
// atomically after every mutation.
//
// Loading fails open. A missing or undecodable document is replaced by a
// freshly seeded default state rather than surfacing an error, so the app
// stays usable even with a corrupted file. The broken file is preserved
// alongside (state.json.corrupt.<timestamp>) before it is overwritten.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"streaks/internal/daykey"
	"streaks/internal/fsutil"
)

// StateFile is the name of the persisted document inside the data dir.
const StateFile = "state.json"

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// defaultHabitTitles seed a fresh installation so the list is not empty on
// first launch.
var defaultHabitTitles = []string{
	"Drink water",
	"Exercise",
	"Read",
	"Sleep early",
}

// Store reads and writes the application state document.
type Store struct {
	dataDir string
	now     func() time.Time // injectable clock for deterministic tests
}

// New creates a Store rooted at dataDir, creating the directory if needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir, now: time.Now}, nil
}

// SetNowFunc overrides the clock used for seeding and day-key generation.
// Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// DataDir returns the data directory path.
func (s *Store) DataDir() string {
	return s.dataDir
}

// Path returns the full path of the state document.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, StateFile)
}

// Seeded returns a fresh default state: the seeded habit list, no
// completions, today's key as the last seen day, streaks at zero.
func (s *Store) Seeded() *State {
	habits := make([]Habit, 0, len(defaultHabitTitles))
	for _, title := range defaultHabitTitles {
		habits = append(habits, Habit{ID: NewHabitID(), Title: title})
	}
	return &State{
		Habits:         habits,
		Completions:    map[string]IDSet{},
		LastSeenDayKey: daykey.Of(s.Now()),
	}
}

// Load reads the persisted state. It never fails: a missing document yields
// a seeded default (which is written through so the installation is
// initialized exactly once), and an undecodable document is moved aside and
// replaced by the seeded default the same way.
func (s *Store) Load() *State {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		st := s.Seeded()
		_ = s.Save(st)
		return st
	}

	var st State
	if len(bytes.TrimSpace(data)) == 0 || json.Unmarshal(data, &st) != nil {
		s.preserveCorrupt(path)
		st := s.Seeded()
		_ = s.Save(st)
		return st
	}

	st.normalize()
	return &st
}

// Save serializes state and overwrites the document atomically. A
// best-effort .bak copy of the previous contents is kept first.
func (s *Store) Save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", StateFile, err)
	}

	path := s.Path()
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", StateFile, err)
	}
	return nil
}

// preserveCorrupt moves an unreadable document aside so the data is not
// destroyed silently when Load falls back to defaults.
func (s *Store) preserveCorrupt(path string) {
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, s.Now().Format("20060102-150405"))
	_ = os.Rename(path, corruptPath)
}
