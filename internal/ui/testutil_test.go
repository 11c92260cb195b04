package ui

import (
	"testing"
	"time"

	"streaks/internal/config"
	"streaks/internal/engine"
	"streaks/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to keep output stable across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestEngine creates an engine over a temporary store with a fixed
// clock so renders are reproducible.
func createTestEngine(t *testing.T) *engine.Engine {
	t.Helper()

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	at := time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
	st.SetNowFunc(func() time.Time { return at })

	return engine.New(st)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}
