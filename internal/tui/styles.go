package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/studybunny/internal/record"
)

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#A544FF"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorTabOff  lipgloss.Color = "#7f849c"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorTabOff).
				Padding(0, 1)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	helpStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle     = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	doneStyle      = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
)

// swatch renders a palette color as a dot.
func swatch(c record.Color) string {
	if c == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c))).Render("●")
}

func marker(on bool) string {
	if on {
		return "▶"
	}
	return " "
}

func check(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
