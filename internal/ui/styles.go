// Package ui provides terminal output styling for the naja CLI.
// Colors are applied only when stdout is an interactive terminal; pipes,
// CI logs, NO_COLOR, and TERM=dumb all get plain text.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Theme is the single source of truth for all CLI styling.
type Theme struct {
	Primary lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Header  lipgloss.Style
	Border  lipgloss.Style
}

// DefaultTheme returns the standard ANSI color theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // Blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Gray
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// PlainTheme returns a theme with no color or weight attributes.
func PlainTheme() *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		Primary: plain, Success: plain, Error: plain, Warning: plain,
		Info: plain, Dim: plain, Header: plain, Border: plain,
	}
}

var theme = autoTheme()

// autoTheme picks the default theme for interactive terminals and the
// plain theme everywhere else. Honors https://no-color.org/.
func autoTheme() *Theme {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return PlainTheme()
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return DefaultTheme()
	}
	return PlainTheme()
}

// SetTheme replaces the global theme. Used by tests and the --no-color flag.
func SetTheme(t *Theme) {
	theme = t
}

// Primary renders text in the primary color.
func Primary(text string) string {
	return theme.Primary.Render(text)
}

// Success renders text in green.
func Success(text string) string {
	return theme.Success.Render(text)
}

// Error renders text in red.
func Error(text string) string {
	return theme.Error.Render(text)
}

// Warning renders text in yellow.
func Warning(text string) string {
	return theme.Warning.Render(text)
}

// Info renders text in cyan.
func Info(text string) string {
	return theme.Info.Render(text)
}

// Dim renders text in gray.
func Dim(text string) string {
	return theme.Dim.Render(text)
}

// Header renders text as a bold header.
func Header(text string) string {
	return theme.Header.Render(text)
}

// Done renders text with a success checkmark.
func Done(text string) string {
	return theme.Success.Render("✓ " + text)
}

// Failed renders text with an error cross.
func Failed(text string) string {
	return theme.Error.Render("✗ " + text)
}
