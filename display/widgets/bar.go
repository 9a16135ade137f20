package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BarStyle selects the glyph set for usage bars.
type BarStyle int

const (
	// BarBlocks draws with unicode block elements.
	BarBlocks BarStyle = iota
	// BarASCII draws a bracketed bar that survives any font.
	BarASCII
)

var (
	barWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	barDangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// BarConfig controls the appearance of a usage bar.
type BarConfig struct {
	// Blocks is the number of cells in the bar (default: 10).
	Blocks int
	// Percent is the value from 0 to 100.
	Percent int
	// Style selects the glyph set.
	Style BarStyle
	// Fill styles the filled portion below the warning threshold. The
	// zero value leaves it unstyled.
	Fill lipgloss.Style
	// WarnAt and DangerAt recolor the filled portion yellow and red
	// (defaults: 70 and 90). Set both above 100 to disable.
	WarnAt   int
	DangerAt int
}

// DefaultBarConfig returns a BarConfig with the standard ten-cell bar.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Blocks:   10,
		WarnAt:   70,
		DangerAt: 90,
	}
}

// RenderBar renders a usage bar, e.g. "███░░░░░░░" or "[===       ]".
// Percent is clamped to 0-100.
func RenderBar(cfg BarConfig) string {
	percent := cfg.Percent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	blocks := cfg.Blocks
	if blocks <= 0 {
		blocks = 10
	}

	filled := int(math.Round(float64(percent) / 100.0 * float64(blocks)))
	if filled > blocks {
		filled = blocks
	}
	empty := blocks - filled

	if cfg.Style == BarASCII {
		return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", empty) + "]"
	}

	bar := barFill(cfg, percent).Render(strings.Repeat("█", filled))
	return bar + strings.Repeat("░", empty)
}

// barFill picks the style for the filled portion based on the
// thresholds.
func barFill(cfg BarConfig, percent int) lipgloss.Style {
	warnAt := cfg.WarnAt
	if warnAt <= 0 {
		warnAt = 70
	}
	dangerAt := cfg.DangerAt
	if dangerAt <= 0 {
		dangerAt = 90
	}

	switch {
	case percent >= dangerAt:
		return barDangerStyle
	case percent >= warnAt:
		return barWarnStyle
	default:
		return cfg.Fill
	}
}
