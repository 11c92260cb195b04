// Package ui provides the terminal user interface for the streaks app.
// This file contains the main App model which owns the habit pane and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"streaks/internal/config"
	"streaks/internal/engine"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys             *config.KeysConfig
	ConfirmDeletions bool
	ShowOnboarding   bool
}

// App is the main application model.
type App struct {
	engine      *engine.Engine
	styles      *Styles
	config      *AppConfig
	habitsPane  *HabitsPane
	helpOverlay *HelpOverlay
	confirmDel  *confirmDeleteState
	showHelp    bool
	showWelcome bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmDeleteState struct {
	title string
	body  string
}

// NewApp creates a new application over an already-loaded engine.
func NewApp(eng *engine.Engine, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:             &config.KeysConfig{},
			ConfirmDeletions: true,
			ShowOnboarding:   true,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	habitsPane := NewHabitsPaneWithKeys(eng, styles, cfg.Keys)
	helpOverlay := NewHelpOverlay(styles)

	// First run: no completions recorded yet beyond the seeded habits.
	showWelcome := cfg.ShowOnboarding && isFirstRun(eng)

	app := &App{
		engine:      eng,
		styles:      styles,
		config:      cfg,
		habitsPane:  habitsPane,
		helpOverlay: helpOverlay,
		showHelp:    false,
		showWelcome: showWelcome,
		keys:        NewGlobalKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	habitsPane.SetFocused(true)

	return app
}

// isFirstRun checks whether any completion has ever been recorded.
func isFirstRun(eng *engine.Engine) bool {
	for _, key := range eng.DayKeys() {
		if len(eng.CompletionsOn(key)) > 0 {
			return false
		}
	}
	return true
}

// tickMsg is sent periodically for time updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the clock. The engine already holds loaded state, so there
// is nothing to fetch asynchronously.
func (a *App) Init() tea.Cmd {
	a.engine.RefreshForNewDayIfNeeded()
	return tickCmd()
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.showWelcome {
			a.showWelcome = false
			return a, nil
		}

		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				a.confirmDel = nil
				if title := a.habitsPane.DeleteAtCursor(); title != "" {
					a.SetStatus("Deleted: "+title, false)
				}
				return a, nil
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
			}
			return a, nil
		}

		if !a.habitsPane.IsAdding() {
			// Confirm deletions if enabled.
			if a.config.ConfirmDeletions && key.Matches(msg, a.habitsPane.keys.Delete) {
				if !a.habitsPane.HasSelection() {
					a.SetStatus("No habit selected", true)
					return a, nil
				}
				a.confirmDel = &confirmDeleteState{
					title: "Delete habit?",
					body:  truncateText(a.habitsPane.HabitTitleAtCursor(), 60),
				}
				return a, nil
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil
			}
		}

		// Unconfirmed delete path: delete immediately.
		if !a.habitsPane.IsAdding() && !a.config.ConfirmDeletions && key.Matches(msg, a.habitsPane.keys.Delete) {
			if title := a.habitsPane.DeleteAtCursor(); title != "" {
				a.SetStatus("Deleted: "+title, false)
			}
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.FocusMsg:
		// Terminal regained focus; the calendar day may have changed.
		a.engine.RefreshForNewDayIfNeeded()
		return a, nil

	case tea.MouseMsg:
		if a.showWelcome {
			if msg.Action == tea.MouseActionPress {
				a.showWelcome = false
			}
			return a, nil
		}

		if a.confirmDel != nil {
			if msg.Action == tea.MouseActionPress {
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
			}
			return a, nil
		}

		if a.showHelp {
			if msg.Action == tea.MouseActionPress {
				a.showHelp = false
			}
			return a, nil
		}

		cmd, status := a.habitsPane.Update(msg)
		if status != "" {
			a.SetStatus(status, false)
		}
		return a, cmd

	case tickMsg:
		// Day rollover happens here while the app stays open past midnight.
		a.engine.RefreshForNewDayIfNeeded()

		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()
	}

	// Forward to the habits pane (only if help is not shown)
	if !a.showHelp {
		cmd, status := a.habitsPane.Update(msg)
		if status != "" {
			a.SetStatus(status, false)
		}
		return a, cmd
	}

	return a, nil
}

// updateLayout recalculates pane size based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)

	paneWidth := a.width - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	a.habitsPane.SetSize(paneWidth, contentHeight)
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.showWelcome {
		return a.renderWelcome()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	// Habit list
	b.WriteString(a.habitsPane.View())
	b.WriteString("\n")

	// Help bar
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderWelcome() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorPrimary).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to streaks"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Check off every habit each day to grow your streak.\n"))
	b.WriteString(bodyStyle.Render("Space toggles a habit. 'a' adds one. ? opens help.\n"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to continue"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows an exit message with today's progress.
func (a *App) renderGoodbye() string {
	done, total := a.habitsPane.TodayCompletionRate()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you tomorrow!\n")
	b.WriteString("\n")

	if total > 0 {
		pct := (done * 100) / total
		b.WriteString(fmt.Sprintf("  Today's habits: %d/%d (%d%%)\n", done, total, pct))
		b.WriteString(fmt.Sprintf("  Streak: %d day(s) · Best: %d day(s)\n", a.engine.CurrentStreak(), a.engine.BestStreak()))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with today's date and progress.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" streaks ")

	done, total := a.habitsPane.TodayCompletionRate()
	var stats string
	if total > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("Today: %d/%d", done, total))
	}

	streak := a.styles.HabitStreakStyle.Render(fmt.Sprintf("🔥 %d", a.engine.CurrentStreak()))

	date := a.styles.DateStyle.Render(a.engine.DisplayDate())

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	streakWidth := lipgloss.Width(streak)
	dateWidth := lipgloss.Width(date)

	usedWidth := titleWidth + statsWidth + streakWidth + dateWidth
	spacerWidth := a.width - usedWidth - 6
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)

	if stats != "" {
		parts = append(parts, "  "+stats)
	}

	leftSpacer := strings.Repeat(" ", spacerWidth/2)
	rightSpacer := strings.Repeat(" ", spacerWidth-spacerWidth/2)

	parts = append(parts, leftSpacer)
	parts = append(parts, streak)
	parts = append(parts, rightSpacer)
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.habitsPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	return a.styles.RenderHelp(
		"a", "add",
		"space", "toggle",
		"x", "del",
		"J/K", "move",
		"j/k", "nav",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens text for overlay display.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return "…"
	}
	return s[:limit-1] + "…"
}

// Run starts the Bubble Tea program over the given engine.
// Focus reporting lets the app catch day rollovers when the terminal
// returns to the foreground.
func Run(eng *engine.Engine, styles *Styles, cfg *AppConfig) error {
	app := NewApp(eng, styles, cfg)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}
