package stats

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown renders a daily report as Markdown.
func FormatDailyMarkdown(r *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Habits — %s\n\n", r.Date)

	if r.TotalCount == 0 {
		b.WriteString("No habits tracked yet.\n")
	} else {
		for _, h := range r.Habits {
			box := "[ ]"
			if h.Done {
				box = "[x]"
			}
			fmt.Fprintf(&b, "- %s %s\n", box, h.Title)
		}
		fmt.Fprintf(&b, "\n**%d/%d completed (%.0f%%)**\n", r.CompletedCount, r.TotalCount, r.CompletionRate)
		if r.Full {
			b.WriteString("\nAll habits done today. 🔥\n")
		}
	}

	fmt.Fprintf(&b, "\nStreak: %d day(s) · Best: %d day(s)\n", r.CurrentStreak, r.BestStreak)
	return b.String()
}

// FormatWeeklyMarkdown renders a weekly report as Markdown.
func FormatWeeklyMarkdown(r *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly habits — %s to %s\n\n", r.StartDate, r.EndDate)

	if len(r.Habits) == 0 {
		b.WriteString("No habits tracked yet.\n")
	} else {
		// Header row: day-of-week letters.
		b.WriteString("| Habit |")
		for _, d := range r.ByDay {
			fmt.Fprintf(&b, " %s |", d.DayOfWeek)
		}
		b.WriteString(" Rate |\n|---|")
		for range r.ByDay {
			b.WriteString("---|")
		}
		b.WriteString("---|\n")

		for _, h := range r.Habits {
			fmt.Fprintf(&b, "| %s |", h.Title)
			for _, done := range h.DaysCompleted {
				mark := " "
				if done {
					mark = "x"
				}
				fmt.Fprintf(&b, " %s |", mark)
			}
			fmt.Fprintf(&b, " %d/7 |\n", h.CompletedCount)
		}

		fmt.Fprintf(&b, "\n**Overall: %.0f%%**\n", r.OverallRate)
	}

	fmt.Fprintf(&b, "\nStreak: %d day(s) · Best: %d day(s)\n", r.CurrentStreak, r.BestStreak)
	return b.String()
}

// FormatRangeMarkdown renders a range report as Markdown.
func FormatRangeMarkdown(r *RangeReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Habits — %s to %s (%d days)\n\n", r.StartDate, r.EndDate, r.Days)

	if len(r.Habits) == 0 {
		b.WriteString("No habits tracked yet.\n")
	} else {
		for _, h := range r.Habits {
			fmt.Fprintf(&b, "- %s: %d/%d days (%.0f%%)\n", h.Title, h.CompletedCount, r.Days, h.CompletionRate)
		}
		fmt.Fprintf(&b, "\n**Fully completed days: %d/%d · Overall: %.0f%%**\n", r.FullDays, r.Days, r.OverallRate)
	}

	fmt.Fprintf(&b, "\nStreak: %d day(s) · Best: %d day(s)\n", r.CurrentStreak, r.BestStreak)
	return b.String()
}
