package stats

import "time"

// HabitStatus is one habit's completion state on a single day.
type HabitStatus struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// DailyReport summarizes a single calendar day.
type DailyReport struct {
	Date           string        `json:"date"` // day key
	Habits         []HabitStatus `json:"habits"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
	CompletionRate float64       `json:"completion_rate"` // percent
	Full           bool          `json:"full"`
	CurrentStreak  int           `json:"current_streak"`
	BestStreak     int           `json:"best_streak"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

// WeeklyHabitStatus is one habit's completions across a seven-day window.
type WeeklyHabitStatus struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	DaysCompleted  []bool  `json:"days_completed"` // index 0 = week start
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"` // percent of 7 days
}

// DayCount is the per-day roll-up inside a weekly report.
type DayCount struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Full      bool   `json:"full"`
}

// WeeklyReport summarizes a Sunday-aligned week.
type WeeklyReport struct {
	StartDate     string              `json:"start_date"`
	EndDate       string              `json:"end_date"`
	Habits        []WeeklyHabitStatus `json:"habits"`
	ByDay         []DayCount          `json:"by_day"`
	OverallRate   float64             `json:"overall_rate"` // percent
	CurrentStreak int                 `json:"current_streak"`
	BestStreak    int                 `json:"best_streak"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// RangeHabitStatus is one habit's completion rate across an arbitrary
// window of days.
type RangeHabitStatus struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"` // percent of window days
}

// RangeReport summarizes an arbitrary inclusive day range.
type RangeReport struct {
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	Days          int                `json:"days"`
	Habits        []RangeHabitStatus `json:"habits"`
	FullDays      int                `json:"full_days"`
	OverallRate   float64            `json:"overall_rate"` // percent
	CurrentStreak int                `json:"current_streak"`
	BestStreak    int                `json:"best_streak"`
	GeneratedAt   time.Time          `json:"generated_at"`
}
