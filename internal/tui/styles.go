package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorDanger  = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("241")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	stepBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	stepBarActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	unselectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(26)

	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(colorPrimary)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	interimPanelStyle = panelStyle.
				BorderForeground(colorPrimary)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)
