// Package color controls when slowfetch emits ANSI color and resolves
// the configured color names into lipgloss styles.
//
// It implements the NO_COLOR specification (https://no-color.org/) and
// automatic pipe/redirect detection. When color is disabled, lipgloss is
// set to the Ascii profile so every styled render produces plain text.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ShouldDisableColor returns true if color output should be suppressed:
// when the NO_COLOR environment variable is set (any value, per
// no-color.org), or when stdout is not a terminal.
func ShouldDisableColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return true
	}

	return false
}

// Apply configures the global lipgloss renderer from ShouldDisableColor
// and returns whether color ended up enabled. With color disabled every
// lipgloss.Style.Render call passes text through unstyled, so callers
// can keep one code path.
func Apply() bool {
	if ShouldDisableColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	}
	return true
}

// ForceDisable unconditionally disables color output. Used for the
// -no-color flag and for tests that assert on plain strings.
func ForceDisable() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// StripANSI removes all ANSI escape sequences from a string. It is a
// safety net for output that bypasses lipgloss styling.
func StripANSI(s string) string {
	var result []byte
	inEscape := false
	for i := 0; i < len(s); i++ {
		if inEscape {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') || s[i] == '~' {
				inEscape = false
			}
			continue
		}
		if s[i] == '\x1b' {
			inEscape = true
			continue
		}
		result = append(result, s[i])
	}
	return string(result)
}
