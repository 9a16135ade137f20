package layout

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

// Geometry is a point-in-time terminal size in character cells. It is
// read fresh on every render and never cached, since the terminal can
// be resized between invocations.
type Geometry struct {
	Columns int
	Rows    int
}

// DetectGeometry returns the current terminal dimensions. It asks the
// stdout TTY first, falls back to the COLUMNS and LINES environment
// variables, and finally to 80x24. It never fails.
func DetectGeometry() Geometry {
	// Try TTY detection first using the stdout file descriptor.
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err == nil && w > 0 && h > 0 {
		return Geometry{Columns: w, Rows: h}
	}

	var width, height int

	// Try environment variables.
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if w, err := strconv.Atoi(cols); err == nil && w > 0 {
			width = w
		}
	}
	if lines := os.Getenv("LINES"); lines != "" {
		if h, err := strconv.Atoi(lines); err == nil && h > 0 {
			height = h
		}
	}

	// Defaults.
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}
	return Geometry{Columns: width, Rows: height}
}
