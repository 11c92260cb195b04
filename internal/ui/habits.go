// Package ui provides the terminal user interface for the streaks app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"streaks/internal/config"
	"streaks/internal/daykey"
	"streaks/internal/engine"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// HabitsPane displays the habit list with today's checkboxes, a seven-day
// completion view, and the streak summary. All mutations go straight
// through the engine; the engine persists on every change.
type HabitsPane struct {
	engine  *engine.Engine
	cursor  int
	focused bool
	width   int
	height  int
	adding  bool
	input   textinput.Model
	styles  *Styles

	// Key bindings
	keys      HabitKeyMap
	inputKeys InputKeyMap
}

// NewHabitsPane creates a new habits pane.
func NewHabitsPane(eng *engine.Engine, styles *Styles) *HabitsPane {
	return NewHabitsPaneWithKeys(eng, styles, &config.KeysConfig{})
}

// NewHabitsPaneWithKeys creates a new habits pane with custom key bindings.
func NewHabitsPaneWithKeys(eng *engine.Engine, styles *Styles, keyCfg *config.KeysConfig) *HabitsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Habit name (e.g., Exercise)"
	ti.CharLimit = 40
	ti.Width = 30

	return &HabitsPane{
		engine:    eng,
		cursor:    0,
		focused:   false,
		input:     ti,
		styles:    styles,
		keys:      NewHabitKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *HabitsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *HabitsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *HabitsPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add mode.
func (p *HabitsPane) IsAdding() bool {
	return p.adding
}

// clampCursor keeps the cursor inside the habit list after mutations.
func (p *HabitsPane) clampCursor() {
	n := len(p.engine.Habits())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// Update handles messages for the habits pane. It returns a status line
// for the app to display, or "" when nothing noteworthy happened.
func (p *HabitsPane) Update(msg tea.Msg) (tea.Cmd, string) {
	var cmd tea.Cmd

	// If we're adding a habit, handle input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				title := strings.TrimSpace(p.input.Value())
				p.resetAddMode()
				if title == "" {
					return nil, ""
				}
				if h := p.engine.AddHabit(title); h != nil {
					p.cursor = len(p.engine.Habits()) - 1
					return nil, "Added: " + h.Title
				}
				return nil, ""

			case key.Matches(msg, p.inputKeys.Cancel):
				p.resetAddMode()
				return nil, ""
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd, ""
	}

	// Normal mode
	if !p.focused {
		return nil, ""
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg), ""

	case tea.KeyMsg:
		habits := p.engine.Habits()

		switch {
		case key.Matches(msg, p.keys.Down):
			if len(habits) > 0 {
				p.cursor = min(p.cursor+1, len(habits)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(habits) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(habits) > 0 {
				p.cursor = len(habits) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink, ""

		case key.Matches(msg, p.keys.Toggle):
			if len(habits) > 0 && p.cursor < len(habits) {
				return nil, p.Toggle()
			}

		case key.Matches(msg, p.keys.MoveUp):
			if len(habits) > 1 && p.cursor > 0 {
				p.engine.MoveHabits([]int{p.cursor}, p.cursor-1)
				p.cursor--
			}

		case key.Matches(msg, p.keys.MoveDown):
			if len(habits) > 1 && p.cursor < len(habits)-1 {
				p.engine.MoveHabits([]int{p.cursor}, p.cursor+2)
				p.cursor++
			}
		}
	}

	return nil, ""
}

// DeleteAtCursor removes the habit under the cursor and returns its title,
// or "" if nothing was deleted. The app calls this after confirmation.
func (p *HabitsPane) DeleteAtCursor() string {
	habits := p.engine.Habits()
	if len(habits) == 0 || p.cursor >= len(habits) {
		return ""
	}
	title := habits[p.cursor].Title
	p.engine.DeleteHabits([]int{p.cursor})
	p.clampCursor()
	return title
}

// HabitTitleAtCursor returns the title of the habit under the cursor.
func (p *HabitsPane) HabitTitleAtCursor() string {
	habits := p.engine.Habits()
	if len(habits) == 0 || p.cursor >= len(habits) {
		return ""
	}
	return habits[p.cursor].Title
}

// HasSelection reports whether the cursor points at a habit.
func (p *HabitsPane) HasSelection() bool {
	habits := p.engine.Habits()
	return len(habits) > 0 && p.cursor < len(habits)
}

// resetAddMode resets the add habit state.
func (p *HabitsPane) resetAddMode() {
	p.adding = false
	p.input.Reset()
	p.input.Blur()
}

// handleMouse processes mouse events for the habits pane.
func (p *HabitsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	habits := p.engine.Habits()
	if len(habits) == 0 {
		return nil
	}

	// Content starts after title (1) + separator (1) + blank (1).
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(habits)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}

		habitRow := msg.Y - headerRows
		if habitRow < 0 || habitRow >= len(habits) {
			return nil
		}

		p.cursor = habitRow

		// Click on the checkbox area toggles; elsewhere just selects.
		if msg.X < 6 {
			h := habits[p.cursor]
			if p.engine.IsCompletedToday(h.ID) {
				p.engine.MarkUndone(h.ID)
			} else {
				p.engine.MarkDone(h.ID)
			}
		}
	}

	return nil
}

// Toggle flips today's completion for the habit under the cursor and
// returns a status line describing what happened.
func (p *HabitsPane) Toggle() string {
	habits := p.engine.Habits()
	if len(habits) == 0 || p.cursor >= len(habits) {
		return ""
	}
	h := habits[p.cursor]
	if p.engine.IsCompletedToday(h.ID) {
		p.engine.MarkUndone(h.ID)
		return ""
	}
	if p.engine.MarkDone(h.ID) {
		return "All habits done today 🔥"
	}
	return ""
}

// View renders the habits pane.
func (p *HabitsPane) View() string {
	var b strings.Builder

	habits := p.engine.Habits()

	// Title
	title := p.styles.PaneTitleStyle.Render("🔥 HABITS")
	b.WriteString(title)
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(habits) == 0 && !p.adding {
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")

		weekKeys := p.weekKeys()
		weekDone := p.weekCompletions(weekKeys)

		for i, habit := range habits {
			// Selection indicator
			prefix := "  "
			if i == p.cursor && p.focused && !p.adding {
				prefix = "▶ "
			}

			// Today's checkbox
			checkbox := p.styles.CheckboxPending
			nameStyle := p.styles.HabitPendingStyle
			if p.engine.IsCompletedToday(habit.ID) {
				checkbox = p.styles.CheckboxDone
				nameStyle = p.styles.HabitDoneStyle
			}

			line := fmt.Sprintf("%s%s %s  ", prefix, checkbox, nameStyle.Render(habit.Title))

			// Week view (last 7 days, today last)
			week := weekDone[habit.ID]
			line += p.renderWeekView(week)

			weekCount := 0
			for _, done := range week {
				if done {
					weekCount++
				}
			}
			line += fmt.Sprintf("  %d/7", weekCount)

			// Highlight if selected
			if i == p.cursor && p.focused && !p.adding {
				line = p.styles.HabitSelectedStyle.Render(line)
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Streak summary
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Streak: ") +
			p.styles.HabitStreakStyle.Render(fmt.Sprintf("%d", p.engine.CurrentStreak())) +
			p.styles.StatLabelStyle.Render("  Best: ") +
			p.styles.StatValueStyle.Render(fmt.Sprintf("%d", p.engine.BestStreak())))
		b.WriteString("\n")

		// Day labels under the week dots
		b.WriteString("\n")
		b.WriteString("  " + p.styleMutedText(p.dayLabels(weekKeys)))
		b.WriteString("\n")
	}

	// Input field when adding
	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("Name: ")
		b.WriteString("  " + prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// weekKeys returns the last seven day keys, oldest first, ending today.
func (p *HabitsPane) weekKeys() []string {
	today, err := daykey.Parse(p.engine.TodayKey())
	if err != nil {
		today = time.Now()
	}

	keys := make([]string, 7)
	for i := 0; i < 7; i++ {
		keys[i] = daykey.Of(today.AddDate(0, 0, -(6 - i)))
	}
	return keys
}

// weekCompletions builds per-habit completion flags for the given days.
func (p *HabitsPane) weekCompletions(weekKeys []string) map[string][]bool {
	result := make(map[string][]bool)
	for _, h := range p.engine.Habits() {
		result[h.ID] = make([]bool, len(weekKeys))
	}

	for d, key := range weekKeys {
		for _, id := range p.engine.CompletionsOn(key) {
			if week, ok := result[id]; ok {
				week[d] = true
			}
		}
	}
	return result
}

// renderWeekView creates the visual week representation.
func (p *HabitsPane) renderWeekView(week []bool) string {
	var result string
	for _, done := range week {
		if done {
			result += p.styles.HabitDoneIcon + " "
		} else {
			result += p.styles.HabitUndoneIcon + " "
		}
	}
	return strings.TrimSuffix(result, " ")
}

// styleMutedText applies muted style to text.
func (p *HabitsPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

// dayLabels returns the day-of-week letters aligned with the week dots.
func (p *HabitsPane) dayLabels(weekKeys []string) string {
	result := "        " // Indent to align with the dots
	for _, key := range weekKeys {
		day, err := daykey.Parse(key)
		if err != nil {
			result += "? "
			continue
		}
		result += day.Format("Mon")[:1] + " "
	}
	return strings.TrimSuffix(result, " ")
}

// TodayCompletionRate returns how many habits were completed today.
func (p *HabitsPane) TodayCompletionRate() (done, total int) {
	return p.engine.CompletedCountToday(), len(p.engine.Habits())
}
