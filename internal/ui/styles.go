// Package ui renders corrections and hosts the interactive picker.
package ui

import "github.com/charmbracelet/lipgloss"

// Color definitions for consistent theming
var (
	ColorGreen  = lipgloss.Color("#10B981")
	ColorYellow = lipgloss.Color("#F59E0B")
	ColorGray   = lipgloss.Color("#6B7280")
)

// Green returns a green-colored string
func Green(s string) string {
	return lipgloss.NewStyle().Foreground(ColorGreen).Render(s)
}

// Yellow returns a yellow-colored string
func Yellow(s string) string {
	return lipgloss.NewStyle().Foreground(ColorYellow).Render(s)
}

// HiBlack returns a high-intensity black (gray) colored string
func HiBlack(s string) string {
	return lipgloss.NewStyle().Foreground(ColorGray).Render(s)
}
