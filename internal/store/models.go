package store

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"
)

// Habit is a single tracked habit. Identity is the ID, never the title:
// ids stay stable for the life of the habit so completion records survive
// title edits.
type Habit struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewHabitID generates a unique habit id.
func NewHabitID() string {
	return uuid.NewString()
}

// IDSet is a set of habit ids for one calendar day. It serializes as a
// sorted JSON array so the on-disk document diffs cleanly.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id from the set if present.
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Sorted returns the members as a sorted slice.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarshalJSON encodes the set as a sorted array of ids.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of ids into the set.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

// State is the root persisted aggregate: the ordered habit list, the
// per-day completion sets, and the streak bookkeeping. Day history is
// append-only; a day's set is never deleted once created.
type State struct {
	Habits         []Habit          `json:"habits"`
	Completions    map[string]IDSet `json:"completions"`
	LastSeenDayKey string           `json:"last_seen_day_key"`
	CurrentStreak  int              `json:"current_streak"`
	BestStreak     int              `json:"best_streak"`
}

// EnsureDay guarantees a (possibly empty) completion set exists for key.
// It reports whether the entry had to be created.
func (st *State) EnsureDay(key string) bool {
	if _, ok := st.Completions[key]; ok {
		return false
	}
	st.Completions[key] = IDSet{}
	return true
}

// HasHabit reports whether id is a currently existing habit.
func (st *State) HasHabit(id string) bool {
	for _, h := range st.Habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

// FullyCompleted reports whether the day at key was fully completed: the
// habit list is non-empty and the day's set contains every current habit
// id. An empty habit list never counts as fully completed, so a streak
// cannot accrue by having no habits.
func (st *State) FullyCompleted(key string) bool {
	if len(st.Habits) == 0 {
		return false
	}
	set, ok := st.Completions[key]
	if !ok {
		return false
	}
	valid := 0
	for id := range set {
		if st.HasHabit(id) {
			valid++
		}
	}
	return valid == len(st.Habits)
}

// normalize repairs zero values after decoding so the rest of the app can
// assume non-nil collections and consistent streak bookkeeping.
func (st *State) normalize() {
	if st.Habits == nil {
		st.Habits = []Habit{}
	}
	if st.Completions == nil {
		st.Completions = map[string]IDSet{}
	}
	for key, set := range st.Completions {
		if set == nil {
			st.Completions[key] = IDSet{}
		}
	}
	if st.CurrentStreak < 0 {
		st.CurrentStreak = 0
	}
	if st.BestStreak < st.CurrentStreak {
		st.BestStreak = st.CurrentStreak
	}
}
