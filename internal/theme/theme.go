// Package theme centralizes the lipgloss styles shared by views.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorWarn    lipgloss.Color = "#f9e2af"
)

var (
	Header = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	Text   = lipgloss.NewStyle().Foreground(colorText)
	Muted  = lipgloss.NewStyle().Foreground(colorMuted)

	Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	Success  = lipgloss.NewStyle().Foreground(colorSuccess)
	Error    = lipgloss.NewStyle().Foreground(colorError)
	Warn     = lipgloss.NewStyle().Foreground(colorWarn)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	FocusedBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	DiffAdd = lipgloss.NewStyle().Foreground(colorSuccess)
	DiffDel = lipgloss.NewStyle().Foreground(colorError)

	Key      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(colorMuted)
)
