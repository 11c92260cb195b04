package engine

import (
	"reflect"
	"testing"
	"time"

	"streaks/internal/store"
)

// testClock is a mutable fake clock shared with the store.
type testClock struct {
	at time.Time
}

func (c *testClock) now() time.Time { return c.at }

func (c *testClock) advanceDays(n int) {
	c.at = c.at.AddDate(0, 0, n)
}

// newTestEngine builds an engine over a temp-dir store with a fixed clock.
func newTestEngine(t *testing.T) (*Engine, *store.Store, *testClock) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	clock := &testClock{at: time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)}
	st.SetNowFunc(clock.now)
	return New(st), st, clock
}

// markAll marks every current habit done for today.
func markAll(e *Engine) {
	for _, h := range e.Habits() {
		e.MarkDone(h.ID)
	}
}

func TestMarkDone_And_Queries(t *testing.T) {
	e, _, _ := newTestEngine(t)
	habits := e.Habits()

	if e.CompletedCountToday() != 0 {
		t.Fatalf("CompletedCountToday() = %d, want 0", e.CompletedCountToday())
	}

	e.MarkDone(habits[0].ID)

	if !e.IsCompletedToday(habits[0].ID) {
		t.Error("IsCompletedToday() = false after MarkDone")
	}
	if e.IsCompletedToday(habits[1].ID) {
		t.Error("IsCompletedToday() = true for unmarked habit")
	}
	if e.CompletedCountToday() != 1 {
		t.Errorf("CompletedCountToday() = %d, want 1", e.CompletedCountToday())
	}
}

func TestMarkDone_ReportsDayBecameFull(t *testing.T) {
	e, _, _ := newTestEngine(t)
	habits := e.Habits()

	for i, h := range habits {
		full := e.MarkDone(h.ID)
		wantFull := i == len(habits)-1
		if full != wantFull {
			t.Errorf("MarkDone(#%d) full = %v, want %v", i, full, wantFull)
		}
	}

	// Marking an already-done habit again still reports a full day.
	if !e.MarkDone(habits[0].ID) {
		t.Error("MarkDone() on already-full day = false, want true")
	}
}

func TestMarkDone_IgnoresUnknownID(t *testing.T) {
	e, _, _ := newTestEngine(t)

	if e.MarkDone("ghost") {
		t.Error("MarkDone(unknown) = true, want false")
	}
	if e.CompletedCountToday() != 0 {
		t.Errorf("CompletedCountToday() = %d, want 0 after unknown id", e.CompletedCountToday())
	}
}

func TestMarkUndone(t *testing.T) {
	e, _, _ := newTestEngine(t)
	h := e.Habits()[0]

	e.MarkDone(h.ID)
	e.MarkUndone(h.ID)

	if e.IsCompletedToday(h.ID) {
		t.Error("IsCompletedToday() = true after MarkUndone")
	}

	// Undoing an unmarked habit is harmless.
	e.MarkUndone(h.ID)
	if e.CompletedCountToday() != 0 {
		t.Errorf("CompletedCountToday() = %d, want 0", e.CompletedCountToday())
	}
}

func TestSameDayToggling_NeverTouchesStreaks(t *testing.T) {
	e, _, _ := newTestEngine(t)
	habits := e.Habits()

	for i := 0; i < 3; i++ {
		markAll(e)
		for _, h := range habits {
			e.MarkUndone(h.ID)
		}
	}
	markAll(e)

	if e.CurrentStreak() != 0 || e.BestStreak() != 0 {
		t.Errorf("streaks = %d/%d after same-day toggling, want 0/0",
			e.CurrentStreak(), e.BestStreak())
	}
}

func TestBestStreak_NeverBelowCurrent(t *testing.T) {
	e, _, clock := newTestEngine(t)

	check := func(op string) {
		t.Helper()
		if e.BestStreak() < e.CurrentStreak() {
			t.Fatalf("after %s: bestStreak = %d < currentStreak = %d",
				op, e.BestStreak(), e.CurrentStreak())
		}
	}

	for day := 0; day < 5; day++ {
		markAll(e)
		check("markAll")
		clock.advanceDays(1)
		e.RefreshForNewDayIfNeeded()
		check("refresh")
	}

	e.DeleteHabits([]int{0})
	check("delete")
	e.AddHabit("Stretch")
	check("add")
}

func TestRefresh_SameDayIsIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.RefreshForNewDayIfNeeded()
	snapshot := &store.State{
		Habits:         e.Habits(),
		LastSeenDayKey: e.state.LastSeenDayKey,
		CurrentStreak:  e.CurrentStreak(),
		BestStreak:     e.BestStreak(),
	}
	days := e.DayKeys()

	e.RefreshForNewDayIfNeeded()
	e.RefreshForNewDayIfNeeded()

	after := &store.State{
		Habits:         e.Habits(),
		LastSeenDayKey: e.state.LastSeenDayKey,
		CurrentStreak:  e.CurrentStreak(),
		BestStreak:     e.BestStreak(),
	}
	if !reflect.DeepEqual(snapshot, after) {
		t.Errorf("state changed across same-day refreshes:\n got %#v\nwant %#v", after, snapshot)
	}
	if !reflect.DeepEqual(days, e.DayKeys()) {
		t.Errorf("day keys changed across same-day refreshes: %v vs %v", days, e.DayKeys())
	}
}

func TestRefresh_EnsuresTodayEntry(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.RefreshForNewDayIfNeeded()

	found := false
	for _, key := range e.DayKeys() {
		if key == e.TodayKey() {
			found = true
		}
	}
	if !found {
		t.Errorf("no completions entry for today %q after refresh", e.TodayKey())
	}
}

func TestRefresh_StreakScenario(t *testing.T) {
	// Day 1: complete everything. Day 2: nothing. Verify 1/1 then 0/1.
	e, _, clock := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()

	markAll(e)

	clock.advanceDays(1)
	e.RefreshForNewDayIfNeeded()
	if e.CurrentStreak() != 1 || e.BestStreak() != 1 {
		t.Fatalf("after day 1 rollover: streaks = %d/%d, want 1/1",
			e.CurrentStreak(), e.BestStreak())
	}

	clock.advanceDays(1)
	e.RefreshForNewDayIfNeeded()
	if e.CurrentStreak() != 0 {
		t.Errorf("currentStreak = %d after idle day, want 0", e.CurrentStreak())
	}
	if e.BestStreak() != 1 {
		t.Errorf("bestStreak = %d after idle day, want 1", e.BestStreak())
	}
}

func TestRefresh_ConsecutiveDaysExtendStreak(t *testing.T) {
	e, _, clock := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()

	for day := 1; day <= 4; day++ {
		markAll(e)
		clock.advanceDays(1)
		e.RefreshForNewDayIfNeeded()
		if e.CurrentStreak() != day {
			t.Fatalf("day %d: currentStreak = %d, want %d", day, e.CurrentStreak(), day)
		}
	}
	if e.BestStreak() != 4 {
		t.Errorf("bestStreak = %d, want 4", e.BestStreak())
	}
}

func TestRefresh_EmptyHabitListNeverAccrues(t *testing.T) {
	e, _, clock := newTestEngine(t)
	e.DeleteHabits([]int{0, 1, 2, 3})
	e.RefreshForNewDayIfNeeded()

	for i := 0; i < 10; i++ {
		clock.advanceDays(1)
		e.RefreshForNewDayIfNeeded()
	}

	if e.CurrentStreak() != 0 || e.BestStreak() != 0 {
		t.Errorf("streaks = %d/%d with no habits, want 0/0",
			e.CurrentStreak(), e.BestStreak())
	}
}

func TestRefresh_UnmarkedBeforeRolloverBreaksStreak(t *testing.T) {
	e, _, clock := newTestEngine(t)
	e.DeleteHabits([]int{1, 2, 3}) // keep a single habit
	e.RefreshForNewDayIfNeeded()
	h := e.Habits()[0]

	e.MarkDone(h.ID)
	e.MarkUndone(h.ID)

	clock.advanceDays(1)
	e.RefreshForNewDayIfNeeded()

	if e.CurrentStreak() != 0 {
		t.Errorf("currentStreak = %d, want 0 (day was unmarked before rollover)", e.CurrentStreak())
	}
}

func TestRefresh_MultiDayGapEvaluatesOnlyYesterday(t *testing.T) {
	e, _, clock := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()

	// A fully completed day followed by a three-day gap: the day before
	// "now" is what gets evaluated, so the streak resets.
	markAll(e)
	clock.advanceDays(3)
	e.RefreshForNewDayIfNeeded()

	if e.CurrentStreak() != 0 {
		t.Errorf("currentStreak = %d after gap, want 0", e.CurrentStreak())
	}

	// But completing the day right before the gap's end does count.
	markAll(e)
	clock.advanceDays(1)
	e.RefreshForNewDayIfNeeded()
	if e.CurrentStreak() != 1 {
		t.Errorf("currentStreak = %d, want 1", e.CurrentStreak())
	}
}

func TestAddHabit(t *testing.T) {
	e, _, _ := newTestEngine(t)
	before := len(e.Habits())

	h := e.AddHabit("  Meditate  ")
	if h == nil {
		t.Fatal("AddHabit() = nil for valid title")
	}
	if h.Title != "Meditate" {
		t.Errorf("title = %q, want trimmed %q", h.Title, "Meditate")
	}
	if h.ID == "" {
		t.Error("AddHabit() produced empty id")
	}

	habits := e.Habits()
	if len(habits) != before+1 {
		t.Fatalf("len(habits) = %d, want %d", len(habits), before+1)
	}
	if habits[len(habits)-1].ID != h.ID {
		t.Error("new habit is not at the end of the list")
	}
}

func TestAddHabit_BlankTitleIsNoOp(t *testing.T) {
	e, _, _ := newTestEngine(t)
	before := e.Habits()

	if h := e.AddHabit("   "); h != nil {
		t.Errorf("AddHabit(blank) = %v, want nil", h)
	}
	if h := e.AddHabit(""); h != nil {
		t.Errorf("AddHabit(empty) = %v, want nil", h)
	}
	if !reflect.DeepEqual(before, e.Habits()) {
		t.Error("habit list changed after rejected add")
	}
}

func TestDeleteHabits_CascadesAcrossAllDays(t *testing.T) {
	e, _, clock := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()
	victim := e.Habits()[1]

	// Build up history on three different days.
	for i := 0; i < 3; i++ {
		e.MarkDone(victim.ID)
		clock.advanceDays(1)
		e.RefreshForNewDayIfNeeded()
	}

	e.DeleteHabits([]int{1})

	for _, key := range e.DayKeys() {
		for _, id := range e.CompletionsOn(key) {
			if id == victim.ID {
				t.Fatalf("dangling id %q remains on day %s", victim.ID, key)
			}
		}
	}
	for _, h := range e.Habits() {
		if h.ID == victim.ID {
			t.Fatal("deleted habit still present in list")
		}
	}
}

func TestDeleteHabits_KeepsDayEntries(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()
	h := e.Habits()[0]
	e.MarkDone(h.ID)

	days := len(e.DayKeys())
	e.DeleteHabits([]int{0})

	// History is append-only: the day entry survives even though the only
	// id in it was cascaded away.
	if len(e.DayKeys()) != days {
		t.Errorf("len(dayKeys) = %d after delete, want %d", len(e.DayKeys()), days)
	}
}

func TestDeleteHabits_IgnoresOutOfRange(t *testing.T) {
	e, _, _ := newTestEngine(t)
	before := e.Habits()

	e.DeleteHabits([]int{-1, 99})
	if !reflect.DeepEqual(before, e.Habits()) {
		t.Error("habit list changed after out-of-range delete")
	}
}

func TestMoveHabits(t *testing.T) {
	tests := []struct {
		name string
		from []int
		to   int
		want []string // expected title order; seed list is A B C D
	}{
		{name: "first to end", from: []int{0}, to: 4, want: []string{"B", "C", "D", "A"}},
		{name: "last to front", from: []int{3}, to: 0, want: []string{"D", "A", "B", "C"}},
		{name: "middle down one", from: []int{1}, to: 3, want: []string{"A", "C", "B", "D"}},
		{name: "two to front", from: []int{1, 3}, to: 0, want: []string{"B", "D", "A", "C"}},
		{name: "no-op destination", from: []int{2}, to: 2, want: []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			e.DeleteHabits([]int{0, 1, 2, 3})
			for _, title := range []string{"A", "B", "C", "D"} {
				e.AddHabit(title)
			}

			e.MoveHabits(tt.from, tt.to)

			var got []string
			for _, h := range e.Habits() {
				got = append(got, h.Title)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveHabits_DoesNotTouchCompletions(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()
	habits := e.Habits()
	e.MarkDone(habits[0].ID)
	e.MarkDone(habits[2].ID)

	before := map[string][]string{}
	for _, key := range e.DayKeys() {
		before[key] = e.CompletionsOn(key)
	}

	e.MoveHabits([]int{0}, 4)

	for key, want := range before {
		if got := e.CompletionsOn(key); !reflect.DeepEqual(got, want) {
			t.Errorf("completions[%s] = %v after move, want %v", key, got, want)
		}
	}
	if e.CurrentStreak() != 0 || e.BestStreak() != 0 {
		t.Errorf("streaks changed after move: %d/%d", e.CurrentStreak(), e.BestStreak())
	}
}

func TestMutations_PersistAcrossRestart(t *testing.T) {
	e, st, clock := newTestEngine(t)
	e.RefreshForNewDayIfNeeded()

	markAll(e)
	added := e.AddHabit("Journal")
	clock.advanceDays(1)
	e.RefreshForNewDayIfNeeded()

	// Simulate an app restart: a fresh engine over the same store.
	e2 := New(st)

	if !reflect.DeepEqual(e.Habits(), e2.Habits()) {
		t.Error("habit list did not survive restart")
	}
	if e2.CurrentStreak() != e.CurrentStreak() || e2.BestStreak() != e.BestStreak() {
		t.Errorf("streaks after restart = %d/%d, want %d/%d",
			e2.CurrentStreak(), e2.BestStreak(), e.CurrentStreak(), e.BestStreak())
	}
	found := false
	for _, h := range e2.Habits() {
		if h.ID == added.ID {
			found = true
		}
	}
	if !found {
		t.Error("added habit did not survive restart")
	}
}

func TestCompletionsOn_AbsentDayIsEmpty(t *testing.T) {
	e, _, _ := newTestEngine(t)

	got := e.CompletionsOn("1999-01-01")
	if got == nil || len(got) != 0 {
		t.Errorf("CompletionsOn(absent) = %v, want empty slice", got)
	}
}
