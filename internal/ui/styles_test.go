package ui

import (
	"strings"
	"testing"

	"streaks/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStylesFromTheme_Defaults(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{})

	if s.ColorPrimary != lipgloss.Color("#7C3AED") {
		t.Errorf("ColorPrimary = %v, want default", s.ColorPrimary)
	}
	if s.ColorMuted != lipgloss.Color("#6B7280") {
		t.Errorf("ColorMuted = %v, want default", s.ColorMuted)
	}
}

func TestNewStylesFromTheme_Custom(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{
		Primary: "#FF0000",
		Muted:   "#00FF00",
	})

	if s.ColorPrimary != lipgloss.Color("#FF0000") {
		t.Errorf("ColorPrimary = %v, want #FF0000", s.ColorPrimary)
	}
	if s.ColorMuted != lipgloss.Color("#00FF00") {
		t.Errorf("ColorMuted = %v, want #00FF00", s.ColorMuted)
	}

	// Fixed semantic colors are not theme-driven.
	if s.ColorDanger != lipgloss.Color("#EF4444") {
		t.Errorf("ColorDanger = %v, want fixed default", s.ColorDanger)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	s := createTestStyles()

	out := s.RenderHelp("a", "add", "q", "quit")

	for _, want := range []string{"[a]", "add", "[q]", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q: %s", want, out)
		}
	}
}
