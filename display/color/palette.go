package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ansiNames maps the color names accepted in config files to ANSI
// palette indices. Sticking to the 16-color palette keeps the banner
// readable on whatever scheme the terminal already uses.
var ansiNames = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"gray":           "8",
	"grey":           "8",
	"bright_black":   "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

// ParseStyle resolves one configured color to a lipgloss style.
// Accepted forms: a named ANSI color ("cyan", "bright_magenta"), a
// 256-color code ("208"), a hex value ("#7c3aed"), or "none" for
// unstyled output. The empty string is treated as "none" so absent
// config keys stay plain.
func ParseStyle(name string) (lipgloss.Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	switch {
	case name == "" || name == "none":
		return lipgloss.NewStyle(), nil
	case strings.HasPrefix(name, "#"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color(name)), nil
	}

	if idx, ok := ansiNames[name]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(idx)), nil
	}

	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= 255 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(name)), nil
	}

	return lipgloss.NewStyle(), fmt.Errorf("color: unknown color name %q", name)
}

// Names returns the accepted color names, for error messages and docs.
func Names() []string {
	names := make([]string, 0, len(ansiNames))
	for name := range ansiNames {
		names = append(names, name)
	}
	return names
}

// PaletteSpec names the colors for each banner element as written in
// the config file. Accents color the {1}-{9} placeholders in art files.
type PaletteSpec struct {
	Border  string
	Title   string
	Key     string
	Value   string
	Bar     string
	Accents [9]string
}

// DefaultPaletteSpec returns the stock scheme.
func DefaultPaletteSpec() PaletteSpec {
	return PaletteSpec{
		Border: "cyan",
		Title:  "magenta",
		Key:    "yellow",
		Value:  "none",
		Bar:    "green",
		Accents: [9]string{
			"cyan", "red", "yellow", "blue", "magenta",
			"green", "white", "bright_black", "bright_white",
		},
	}
}

// Palette holds the resolved styles for every colored banner element.
type Palette struct {
	Border lipgloss.Style
	Title  lipgloss.Style
	Key    lipgloss.Style
	Value  lipgloss.Style
	Bar    lipgloss.Style

	accents [9]lipgloss.Style
}

// NewPalette resolves a spec into styles. The first unknown color name
// is reported; the caller is expected to have validated the config, so
// this is a backstop rather than a UX surface.
func NewPalette(spec PaletteSpec) (*Palette, error) {
	p := &Palette{}

	fields := []struct {
		name string
		dst  *lipgloss.Style
	}{
		{spec.Border, &p.Border},
		{spec.Title, &p.Title},
		{spec.Key, &p.Key},
		{spec.Value, &p.Value},
		{spec.Bar, &p.Bar},
	}
	for _, f := range fields {
		style, err := ParseStyle(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = style
	}

	for i, name := range spec.Accents {
		style, err := ParseStyle(name)
		if err != nil {
			return nil, err
		}
		p.accents[i] = style
	}

	// Titles read better bold, matching the banner chrome.
	p.Title = p.Title.Bold(true)

	return p, nil
}

// Accent returns the style for art placeholder {n}, 1-based. Out of
// range falls back to the value style.
func (p *Palette) Accent(n int) lipgloss.Style {
	if n < 1 || n > len(p.accents) {
		return p.Value
	}
	return p.accents[n-1]
}
