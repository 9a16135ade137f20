package tui

import "github.com/charmbracelet/lipgloss"

// Chrome colors for the header and footer. The preview carries the
// user's palette, so the chrome sticks to the terminal's own ANSI
// colors.
const (
	colorAccent = lipgloss.Color("6") // cyan
	colorMuted  = lipgloss.Color("8") // bright black
	colorAlert  = lipgloss.Color("1") // red
)

// Styles used throughout the live view.
var (
	styleShown  lipgloss.Style
	styleHidden lipgloss.Style
	styleStatus lipgloss.Style
	styleSpark  lipgloss.Style
	styleError  lipgloss.Style
)

func init() {
	styleShown = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent).
		Padding(0, 1)

	styleHidden = lipgloss.NewStyle().
		Faint(true).
		Foreground(colorMuted).
		Padding(0, 1)

	styleStatus = lipgloss.NewStyle().
		Foreground(colorMuted)

	styleSpark = lipgloss.NewStyle().
		Foreground(colorAccent)

	styleError = lipgloss.NewStyle().
		Foreground(colorAlert)
}
