// Package engine owns the in-memory application state and every operation
// that reads or mutates it. All mutations write the state through to the
// store before returning; there is no batching.
//
// Streak accounting is strictly a rollover-time effect: marking habits done
// or undone during the day never touches currentStreak or bestStreak. Only
// RefreshForNewDayIfNeeded, on detecting a day-key change, evaluates the
// immediately-preceding day and adjusts the streak — exactly once per
// transition. This keeps toggling within a day free of streak side effects
// and makes repeated launches on the same day idempotent.
//
// The engine has no internal locking. It is built to be driven from one
// goroutine (the UI event loop); a concurrent host must serialize access
// externally.
package engine

import (
	"sort"
	"strings"
	"time"

	"streaks/internal/daykey"
	"streaks/internal/store"
)

// Engine holds one State instance and persists it after every mutation.
type Engine struct {
	store *store.Store
	state *store.State
}

// New loads the persisted state (seeding defaults if the document is
// missing or unreadable) and returns an engine ready for use. The host
// should call RefreshForNewDayIfNeeded immediately after.
func New(st *store.Store) *Engine {
	return &Engine{store: st, state: st.Load()}
}

func (e *Engine) now() time.Time {
	return e.store.Now()
}

// persist writes the state through to disk. Write failures are deliberately
// swallowed: the product favors availability, and the next launch re-derives
// state from whatever made it to disk.
func (e *Engine) persist() {
	_ = e.store.Save(e.state)
}

// TodayKey returns the day key for the current local day.
func (e *Engine) TodayKey() string {
	return daykey.Of(e.now())
}

// DisplayDate returns today's date formatted for presentation.
func (e *Engine) DisplayDate() string {
	return daykey.Display(e.now())
}

// RefreshForNewDayIfNeeded runs the day-rollover check. The host calls it
// at startup and whenever the app returns to the foreground.
//
// Within the same day it only guarantees today's completion entry exists,
// so repeated calls are idempotent. When the day key has changed it
// evaluates whether yesterday — relative to now, not to the old key — was
// fully completed, extends or resets the streak accordingly, and records
// the new day. If more than one day elapsed, only that single preceding day
// is evaluated; intervening idle days neither extend nor further reset the
// streak.
func (e *Engine) RefreshForNewDayIfNeeded() {
	key := e.TodayKey()

	if key == e.state.LastSeenDayKey {
		if e.state.EnsureDay(key) {
			e.persist()
		}
		return
	}

	if e.state.FullyCompleted(daykey.Prev(e.now())) {
		e.state.CurrentStreak++
		if e.state.CurrentStreak > e.state.BestStreak {
			e.state.BestStreak = e.state.CurrentStreak
		}
	} else {
		e.state.CurrentStreak = 0
	}

	e.state.LastSeenDayKey = key
	e.state.EnsureDay(key)
	e.persist()
}

// MarkDone records habitID as completed today and reports whether today
// just became fully completed. The report is informational (the UI uses it
// for a status line); it never changes the streak. Unknown ids are ignored
// so completion sets can never acquire dangling entries.
func (e *Engine) MarkDone(habitID string) bool {
	if !e.state.HasHabit(habitID) {
		return false
	}
	key := e.TodayKey()
	e.state.EnsureDay(key)
	e.state.Completions[key].Add(habitID)
	full := e.state.FullyCompleted(key)
	e.persist()
	return full
}

// MarkUndone removes habitID from today's completion set if present. It
// never retroactively decrements the streak: undoing today's progress
// before the day ends must not punish a streak earned on prior days.
func (e *Engine) MarkUndone(habitID string) {
	if set, ok := e.state.Completions[e.TodayKey()]; ok {
		set.Remove(habitID)
	}
	e.persist()
}

// AddHabit appends a habit with the given title to the end of the list and
// returns it. A blank title is rejected as a no-op and returns nil.
func (e *Engine) AddHabit(title string) *store.Habit {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	h := store.Habit{ID: store.NewHabitID(), Title: title}
	e.state.Habits = append(e.state.Habits, h)
	e.persist()
	return &h
}

// DeleteHabits removes the habits at the given positions and cascades the
// cleanup: their ids are removed from every day's completion set, not just
// today's, so no dangling ids remain anywhere in history. Out-of-range
// indices are ignored. Persists once.
func (e *Engine) DeleteHabits(indices []int) {
	doomed := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(e.state.Habits) {
			doomed[i] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return
	}

	removed := make(map[string]struct{}, len(doomed))
	kept := e.state.Habits[:0]
	for i, h := range e.state.Habits {
		if _, gone := doomed[i]; gone {
			removed[h.ID] = struct{}{}
			continue
		}
		kept = append(kept, h)
	}
	e.state.Habits = kept

	for _, set := range e.state.Completions {
		for id := range removed {
			set.Remove(id)
		}
	}

	e.persist()
}

// MoveHabits moves the habits at the given positions so that they end up
// before the element currently at position to (with to == len meaning the
// end). Completion data is untouched — order is a presentation concern and
// membership is keyed by id.
func (e *Engine) MoveHabits(from []int, to int) {
	picked := make(map[int]struct{}, len(from))
	for _, i := range from {
		if i >= 0 && i < len(e.state.Habits) {
			picked[i] = struct{}{}
		}
	}
	if len(picked) == 0 {
		return
	}

	// Destination is expressed against the original list; shift it left for
	// every moved element that sat before it.
	dest := to
	var moving, remaining []store.Habit
	for i, h := range e.state.Habits {
		if _, ok := picked[i]; ok {
			moving = append(moving, h)
			if i < to {
				dest--
			}
			continue
		}
		remaining = append(remaining, h)
	}
	if dest < 0 {
		dest = 0
	}
	if dest > len(remaining) {
		dest = len(remaining)
	}

	habits := make([]store.Habit, 0, len(e.state.Habits))
	habits = append(habits, remaining[:dest]...)
	habits = append(habits, moving...)
	habits = append(habits, remaining[dest:]...)
	e.state.Habits = habits

	e.persist()
}

// IsCompletedToday reports whether habitID is marked done for today.
func (e *Engine) IsCompletedToday(habitID string) bool {
	set, ok := e.state.Completions[e.TodayKey()]
	return ok && set.Has(habitID)
}

// CompletedCountToday returns how many ids are in today's completion set.
func (e *Engine) CompletedCountToday() int {
	return len(e.state.Completions[e.TodayKey()])
}

// Habits returns a copy of the habit list in its current order.
func (e *Engine) Habits() []store.Habit {
	habits := make([]store.Habit, len(e.state.Habits))
	copy(habits, e.state.Habits)
	return habits
}

// CompletionsOn returns the sorted completion set for an arbitrary day key,
// or an empty slice if no entry exists.
func (e *Engine) CompletionsOn(key string) []string {
	set, ok := e.state.Completions[key]
	if !ok {
		return []string{}
	}
	return set.Sorted()
}

// DayKeys returns every day key present in the completion record, sorted.
func (e *Engine) DayKeys() []string {
	keys := make([]string, 0, len(e.state.Completions))
	for key := range e.state.Completions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CurrentStreak returns the count of consecutive fully-completed days
// ending at the most recently evaluated day.
func (e *Engine) CurrentStreak() int {
	return e.state.CurrentStreak
}

// BestStreak returns the highest streak ever observed.
func (e *Engine) BestStreak() int {
	return e.state.BestStreak
}
