package ui

import (
	"strings"
	"testing"

	"streaks/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp(t *testing.T, cfg *AppConfig) *App {
	t.Helper()
	eng := createTestEngine(t)
	app := NewApp(eng, createTestStyles(), cfg)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func TestApp_WelcomeShownOnFirstRun(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, nil)

	if !app.showWelcome {
		t.Fatal("welcome should show on first run")
	}

	view := app.View()
	if !strings.Contains(view, "Welcome to streaks") {
		t.Errorf("view missing welcome text:\n%s", view)
	}

	// Any key dismisses it.
	app.Update(keyRunes('z'))
	if app.showWelcome {
		t.Error("welcome should be dismissed by a key press")
	}
}

func TestApp_WelcomeSuppressedByConfig(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{
		Keys:             &config.KeysConfig{},
		ConfirmDeletions: true,
		ShowOnboarding:   false,
	})

	if app.showWelcome {
		t.Error("welcome should be suppressed when onboarding is off")
	}
}

func TestApp_WelcomeSkippedWithHistory(t *testing.T) {
	setupTest(t)
	eng := createTestEngine(t)
	eng.MarkDone(eng.Habits()[0].ID)

	app := NewApp(eng, createTestStyles(), nil)
	if app.showWelcome {
		t.Error("welcome should not show once completions exist")
	}
}

func TestApp_ViewShowsTitleAndDate(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	view := app.View()
	if !strings.Contains(view, "streaks") {
		t.Errorf("view missing app title:\n%s", view)
	}
	if !strings.Contains(view, "Mon, Aug 24 2026") {
		t.Errorf("view missing display date:\n%s", view)
	}
	if !strings.Contains(view, "Today: 0/4") {
		t.Errorf("view missing progress summary:\n%s", view)
	}
}

func TestApp_QuitKey(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	_, cmd := app.Update(keyRunes('q'))
	if !app.quitting {
		t.Error("q should set quitting")
	}
	if cmd == nil {
		t.Error("q should return the quit command")
	}

	view := app.View()
	if !strings.Contains(view, "See you tomorrow") {
		t.Errorf("goodbye view missing:\n%s", view)
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	app.Update(keyRunes('?'))
	if !app.showHelp {
		t.Fatal("? should open help")
	}

	view := app.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("help view missing shortcuts:\n%s", view)
	}

	app.Update(keyEsc())
	if app.showHelp {
		t.Error("esc should close help")
	}
}

func TestApp_ConfirmDeleteFlow(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	before := len(app.engine.Habits())

	app.Update(keyRunes('x'))
	if app.confirmDel == nil {
		t.Fatal("x should open the delete confirmation")
	}

	view := app.View()
	if !strings.Contains(view, "Delete habit?") {
		t.Errorf("confirm view missing title:\n%s", view)
	}

	// Cancel keeps the habit.
	app.Update(keyRunes('n'))
	if app.confirmDel != nil {
		t.Error("n should cancel the confirmation")
	}
	if len(app.engine.Habits()) != before {
		t.Error("canceled delete should not remove the habit")
	}

	// Confirm removes it.
	app.Update(keyRunes('x'))
	app.Update(keyRunes('y'))
	if len(app.engine.Habits()) != before-1 {
		t.Errorf("habit count = %d, want %d", len(app.engine.Habits()), before-1)
	}
}

func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: false})

	before := len(app.engine.Habits())
	app.Update(keyRunes('x'))

	if app.confirmDel != nil {
		t.Error("confirmation should be skipped when disabled")
	}
	if len(app.engine.Habits()) != before-1 {
		t.Errorf("habit count = %d, want %d", len(app.engine.Habits()), before-1)
	}
}

func TestApp_ToggleUpdatesTitleBar(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	app.Update(keySpace())

	view := app.View()
	if !strings.Contains(view, "Today: 1/4") {
		t.Errorf("title bar should show 1/4 after toggle:\n%s", view)
	}
}

func TestApp_FocusTriggersRefresh(t *testing.T) {
	setupTest(t)
	app := newTestApp(t, &AppConfig{ShowOnboarding: false, ConfirmDeletions: true})

	// Focus with an unchanged clock is a no-op but must not disturb state.
	streak := app.engine.CurrentStreak()
	app.Update(tea.FocusMsg{})
	if app.engine.CurrentStreak() != streak {
		t.Error("focus refresh on the same day changed the streak")
	}
}
