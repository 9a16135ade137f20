// Package render draws the optional image pane: it detects which
// graphics protocol the terminal speaks, turns an image file into
// escape sequences, and composes the image-beside-sections layout.
package render

import (
	"fmt"
	"os"
	"strings"
)

// Protocol identifies how images reach the terminal.
type Protocol int

const (
	// ProtocolAuto resolves to a concrete protocol at render time.
	ProtocolAuto Protocol = iota
	// ProtocolKitty uses the kitty graphics protocol, spoken by kitty,
	// ghostty and wezterm.
	ProtocolKitty
	// ProtocolUnicode renders half-block characters with 24-bit color,
	// which every modern terminal can display.
	ProtocolUnicode
	// ProtocolNone disables image output.
	ProtocolNone
)

// String returns the protocol name as used in config files.
func (p Protocol) String() string {
	switch p {
	case ProtocolAuto:
		return "auto"
	case ProtocolKitty:
		return "kitty"
	case ProtocolUnicode:
		return "unicode"
	case ProtocolNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseProtocol maps a config value to a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ProtocolAuto, nil
	case "kitty":
		return ProtocolKitty, nil
	case "unicode":
		return ProtocolUnicode, nil
	case "none":
		return ProtocolNone, nil
	default:
		return ProtocolNone, fmt.Errorf("unknown image protocol %q", s)
	}
}

// Detect inspects the environment for a terminal that speaks the kitty
// graphics protocol, falling back to unicode half-blocks. getenv may be
// nil, in which case os.Getenv is used.
//
// Detection order:
//  1. TERM_PROGRAM for ghostty, kitty, wezterm
//  2. TERM containing "kitty" or "ghostty"
//  3. KITTY_WINDOW_ID (survives TERM overrides)
//  4. WEZTERM_EXECUTABLE (wezterm without TERM_PROGRAM set)
//
// SSH and tmux sessions downgrade kitty to unicode: passthrough exists
// but is unreliable enough that broken output is the common case.
func Detect(getenv func(string) string) Protocol {
	if getenv == nil {
		getenv = os.Getenv
	}

	kitty := false
	switch strings.ToLower(getenv("TERM_PROGRAM")) {
	case "ghostty", "kitty", "wezterm":
		kitty = true
	}
	if term := getenv("TERM"); strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		kitty = true
	}
	if getenv("KITTY_WINDOW_ID") != "" {
		kitty = true
	}
	if getenv("WEZTERM_EXECUTABLE") != "" {
		kitty = true
	}

	if kitty && !degradedSession(getenv) {
		return ProtocolKitty
	}
	return ProtocolUnicode
}

// Resolve turns ProtocolAuto into a concrete protocol and passes
// everything else through.
func Resolve(p Protocol, getenv func(string) string) Protocol {
	if p == ProtocolAuto {
		return Detect(getenv)
	}
	return p
}

// degradedSession reports SSH and tmux sessions.
func degradedSession(getenv func(string) string) bool {
	if getenv("SSH_CLIENT") != "" || getenv("SSH_CONNECTION") != "" || getenv("SSH_TTY") != "" {
		return true
	}
	return getenv("TMUX") != ""
}
