// Package ui provides the terminal presentation of the scaffold CLI: the
// color theme, headless detection, spinners and progress bars, result cards
// and markdown rendering. Every component degrades to plain text when output
// is not a terminal or color is disabled.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors holds the hex colors of a theme.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
	Border    string
}

// darkColors and lightColors share the CLI palette.
var (
	darkColors = Colors{
		Primary:   "#DA7756",
		Secondary: "#F4B183",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#9CA3AF",
		Border:    "#4B5563",
	}
	lightColors = Colors{
		Primary:   "#C45A3C",
		Secondary: "#D97757",
		Success:   "#059669",
		Warning:   "#D97706",
		Error:     "#DC2626",
		Muted:     "#6B7280",
		Border:    "#D1D5DB",
	}
)

// ThemeConfig selects a theme.
type ThemeConfig struct {
	// NoColor disables all styling.
	NoColor bool
	// Mode is "dark", "light" or "" to detect from the terminal background.
	Mode string
}

// Theme holds the colors and styles used across the CLI.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Card    lipgloss.Style
}

// NewTheme builds a Theme. The NO_COLOR environment variable forces NoColor.
func NewTheme(cfg ThemeConfig) *Theme {
	noColor := cfg.NoColor || os.Getenv("NO_COLOR") != ""

	colors := darkColors
	switch cfg.Mode {
	case "light":
		colors = lightColors
	case "":
		if !lipgloss.HasDarkBackground() {
			colors = lightColors
		}
	}

	t := &Theme{NoColor: noColor, Colors: colors}
	if noColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Success, t.Warning, t.Error, t.Muted = plain.Bold(true), plain, plain, plain, plain
		t.Card = plain.Border(lipgloss.NormalBorder()).Padding(0, 2)
		return t
	}

	t.Title = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Primary)).Bold(true)
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Success))
	t.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Warning))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Error))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Muted))
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Border)).
		Padding(0, 2)
	return t
}
