package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderPanel(symbol, title, content string, accent lipgloss.Style) string {
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent.GetForeground()).
		Padding(1, 2)

	titleRendered := accent.Bold(true).Render(symbol + " " + title)
	if content == "" {
		return panelStyle.Render(titleRendered)
	}
	return panelStyle.Render(titleRendered + "\n\n" + content)
}

// RenderSuccessPanel renders content in a success-styled panel.
func RenderSuccessPanel(title, content string) string {
	return renderPanel("✓", title, content, theme.Success)
}

// RenderWarningPanel renders content in a warning-styled panel.
func RenderWarningPanel(title, content string) string {
	return renderPanel("⚠", title, content, theme.Warning)
}

// RenderErrorPanel renders content in an error-styled panel.
func RenderErrorPanel(title, content string) string {
	return renderPanel("✗", title, content, theme.Error)
}

// FormatKeyValue formats a key-value pair with a dimmed key.
func FormatKeyValue(key, value string) string {
	return theme.Dim.Render(key+": ") + value
}

// FormatCount formats a count with its singular or plural noun.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// FormatError formats an error for CLI display.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return Error("error") + ": " + err.Error() + "\n"
}
