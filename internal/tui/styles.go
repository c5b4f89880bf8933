package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors - deep-sea terminal aesthetic
var (
	colorBrand   = lipgloss.Color("#00AAFF") // signal blue
	colorAccent  = lipgloss.Color("#33FFAA") // phosphor green
	colorWarning = lipgloss.Color("#FFAA00")
	colorError   = lipgloss.Color("#FF3366")
	colorSuccess = lipgloss.Color("#33FFAA")
	colorMuted   = lipgloss.Color("#555577")
	colorText    = lipgloss.Color("#CCCCDD")
	colorBorder  = lipgloss.Color("#2A2A55")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBrand).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	labelFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	stepStyle = lipgloss.NewStyle().
			Foreground(colorText)

	stepActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	tokenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	dimmedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBrand).
			Padding(1, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorText)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
