package color

import (
	"os"
	"strings"
	"testing"
)

// withNoColor sets NO_COLOR for the test and restores it afterwards.
func withNoColor(t *testing.T, value string, set bool) {
	t.Helper()
	orig, hadOrig := os.LookupEnv("NO_COLOR")
	t.Cleanup(func() {
		if hadOrig {
			os.Setenv("NO_COLOR", orig)
		} else {
			os.Unsetenv("NO_COLOR")
		}
	})
	if set {
		os.Setenv("NO_COLOR", value)
	} else {
		os.Unsetenv("NO_COLOR")
	}
}

func TestShouldDisableColorNoColorSet(t *testing.T) {
	// Per the NO_COLOR spec, any value disables color, including the
	// empty string.
	for _, val := range []string{"", "1", "true", "anything"} {
		withNoColor(t, val, true)
		if !ShouldDisableColor() {
			t.Errorf("ShouldDisableColor() = false with NO_COLOR=%q, want true", val)
		}
	}
}

func TestShouldDisableColorUnset(t *testing.T) {
	withNoColor(t, "", false)

	// Under the test runner stdout is usually a pipe, so the result
	// depends on the environment; it just must not panic.
	_ = ShouldDisableColor()
}

func TestApplyWithNoColor(t *testing.T) {
	withNoColor(t, "1", true)
	if Apply() {
		t.Error("Apply() = true with NO_COLOR set, want false")
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "hello world", "hello world"},
		{"color codes", "\x1b[31mred text\x1b[0m", "red text"},
		{"compound sequence", "\x1b[1;31;40mstyle\x1b[0m gap \x1b[32mgreen\x1b[0m", "style gap green"},
		{"empty string", "", ""},
		{"cursor control", "\x1b[?25h", ""},
		{"unicode preserved", "\x1b[36m╭─ Core ─╮\x1b[0m", "╭─ Core ─╮"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripANSILeavesNoEscapes(t *testing.T) {
	inputs := []string{
		"\x1b[31mred\x1b[0m",
		"\x1b[1;31;42mcomplex\x1b[0m",
		"\x1b[?25h\x1b[?25l",
		"plain",
	}
	for _, input := range inputs {
		if got := StripANSI(input); strings.Contains(got, "\x1b") {
			t.Errorf("StripANSI(%q) still contains ESC: %q", input, got)
		}
	}
}
