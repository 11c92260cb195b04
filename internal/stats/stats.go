// Package stats computes read-only projections over the habit engine's
// state: daily, weekly, and arbitrary-range completion summaries. It never
// mutates anything and consumes only the engine's query surface.
package stats

import (
	"time"

	"streaks/internal/daykey"
	"streaks/internal/store"
)

// Source is the read interface the projection needs from the engine.
type Source interface {
	Habits() []store.Habit
	CompletionsOn(key string) []string
	DayKeys() []string
	CurrentStreak() int
	BestStreak() int
}

// Generator builds reports from a Source.
type Generator struct {
	src Source
}

// NewGenerator creates a report generator over src.
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// doneOn returns the completion set for a day as a lookup map.
func (g *Generator) doneOn(key string) map[string]struct{} {
	ids := g.src.CompletionsOn(key)
	done := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		done[id] = struct{}{}
	}
	return done
}

// Daily summarizes the calendar day containing date.
func (g *Generator) Daily(date time.Time) *DailyReport {
	key := daykey.Of(date)
	habits := g.src.Habits()
	done := g.doneOn(key)

	statuses := make([]HabitStatus, 0, len(habits))
	completed := 0
	for _, h := range habits {
		_, ok := done[h.ID]
		if ok {
			completed++
		}
		statuses = append(statuses, HabitStatus{ID: h.ID, Title: h.Title, Done: ok})
	}

	rate := 0.0
	if len(habits) > 0 {
		rate = float64(completed) / float64(len(habits)) * 100
	}

	return &DailyReport{
		Date:           key,
		Habits:         statuses,
		CompletedCount: completed,
		TotalCount:     len(habits),
		CompletionRate: rate,
		Full:           len(habits) > 0 && completed == len(habits),
		CurrentStreak:  g.src.CurrentStreak(),
		BestStreak:     g.src.BestStreak(),
		GeneratedAt:    time.Now(),
	}
}

// Weekly summarizes the Sunday-aligned week containing date.
func (g *Generator) Weekly(date time.Time) *WeeklyReport {
	start := startOfWeekSunday(date)
	habits := g.src.Habits()

	byDay := make([]DayCount, 7)
	perHabit := make([][]bool, len(habits))
	for i := range perHabit {
		perHabit[i] = make([]bool, 7)
	}

	totalDone := 0
	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d)
		key := daykey.Of(day)
		done := g.doneOn(key)

		count := 0
		for i, h := range habits {
			if _, ok := done[h.ID]; ok {
				perHabit[i][d] = true
				count++
			}
		}
		totalDone += count

		byDay[d] = DayCount{
			Date:      key,
			DayOfWeek: day.Format("Mon"),
			Completed: count,
			Total:     len(habits),
			Full:      len(habits) > 0 && count == len(habits),
		}
	}

	statuses := make([]WeeklyHabitStatus, 0, len(habits))
	for i, h := range habits {
		count := 0
		for _, done := range perHabit[i] {
			if done {
				count++
			}
		}
		statuses = append(statuses, WeeklyHabitStatus{
			ID:             h.ID,
			Title:          h.Title,
			DaysCompleted:  perHabit[i],
			CompletedCount: count,
			CompletionRate: float64(count) / 7 * 100,
		})
	}

	overall := 0.0
	if expected := len(habits) * 7; expected > 0 {
		overall = float64(totalDone) / float64(expected) * 100
	}

	return &WeeklyReport{
		StartDate:     daykey.Of(start),
		EndDate:       daykey.Of(start.AddDate(0, 0, 6)),
		Habits:        statuses,
		ByDay:         byDay,
		OverallRate:   overall,
		CurrentStreak: g.src.CurrentStreak(),
		BestStreak:    g.src.BestStreak(),
		GeneratedAt:   time.Now(),
	}
}

// Range summarizes the inclusive day range [from, to]. An inverted range
// yields an empty report.
func (g *Generator) Range(from, to time.Time) *RangeReport {
	start := startOfDay(from)
	end := startOfDay(to)
	habits := g.src.Habits()

	days := 0
	fullDays := 0
	totalDone := 0
	counts := make(map[string]int, len(habits))

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days++
		done := g.doneOn(daykey.Of(d))

		dayCount := 0
		for _, h := range habits {
			if _, ok := done[h.ID]; ok {
				counts[h.ID]++
				dayCount++
			}
		}
		totalDone += dayCount
		if len(habits) > 0 && dayCount == len(habits) {
			fullDays++
		}
	}

	statuses := make([]RangeHabitStatus, 0, len(habits))
	for _, h := range habits {
		rate := 0.0
		if days > 0 {
			rate = float64(counts[h.ID]) / float64(days) * 100
		}
		statuses = append(statuses, RangeHabitStatus{
			ID:             h.ID,
			Title:          h.Title,
			CompletedCount: counts[h.ID],
			CompletionRate: rate,
		})
	}

	overall := 0.0
	if expected := len(habits) * days; expected > 0 {
		overall = float64(totalDone) / float64(expected) * 100
	}

	return &RangeReport{
		StartDate:     daykey.Of(start),
		EndDate:       daykey.Of(end),
		Days:          days,
		Habits:        statuses,
		FullDays:      fullDays,
		OverallRate:   overall,
		CurrentStreak: g.src.CurrentStreak(),
		BestStreak:    g.src.BestStreak(),
		GeneratedAt:   time.Now(),
	}
}

// AllTime summarizes the full recorded history, from the earliest day key
// present to the latest. With no history it returns an empty range report
// anchored on today.
func (g *Generator) AllTime() *RangeReport {
	keys := g.src.DayKeys()
	if len(keys) == 0 {
		now := time.Now()
		return g.Range(now, now)
	}

	first, errFirst := daykey.Parse(keys[0])
	last, errLast := daykey.Parse(keys[len(keys)-1])
	if errFirst != nil || errLast != nil {
		now := time.Now()
		return g.Range(now, now)
	}
	return g.Range(first, last)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfWeekSunday(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
