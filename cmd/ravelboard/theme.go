package main

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(colorSubtext1).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	upStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	downStyle   = lipgloss.NewStyle().Foreground(colorRed)
	alertStyle  = lipgloss.NewStyle().Foreground(colorPeach)
	noteStyle   = lipgloss.NewStyle().Foreground(colorLavender)
	statusStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	promptStyle = lipgloss.NewStyle().Foreground(colorYellow)
	helpStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface0).Padding(0, 1)
)
