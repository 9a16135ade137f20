// Package art supplies the ASCII logos rendered next to the info
// sections. Logos are embedded per OS in up to four size variants so
// the layout engine can pick whichever fits the terminal.
//
// Art files are plain text with {1}-{9} accent placeholders that
// Colorize resolves against the configured palette; {0} switches back
// to unstyled text. Placeholders cost no columns, so art can be
// measured before or after colorization.
package art

import (
	"embed"
	"fmt"
	"os"
	"runtime"
	"strings"

	"gitlab.com/tinyland/lab/slowfetch/display/color"
	"gitlab.com/tinyland/lab/slowfetch/display/layout"
)

//go:embed assets/*.txt
var assets embed.FS

// osReleaseFile is overridden in tests.
var osReleaseFile = "/etc/os-release"

// Variants bundles the size variants of one logo before colorization.
// Empty slices mean the variant does not exist.
type Variants struct {
	Wide    []string
	Medium  []string
	Narrow  []string
	Compact []string
}

// logoFor maps os-release IDs (and their common derivatives) to an
// embedded logo name.
var logoFor = map[string]string{
	"arch":        "arch",
	"archarm":     "arch",
	"artix":       "arch",
	"endeavouros": "arch",
	"manjaro":     "arch",
	"debian":      "debian",
	"raspbian":    "debian",
	"ubuntu":      "ubuntu",
	"pop":         "ubuntu",
	"fedora":      "fedora",
	"nobara":      "fedora",
	"darwin":      "darwin",
	"macos":       "darwin",
}

// For returns the embedded logo variants for an OS identifier. Unknown
// identifiers get the generic tux.
func For(id string) Variants {
	name, ok := logoFor[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		name = "tux"
	}
	return Variants{
		Wide:    readAsset(name, "wide"),
		Medium:  readAsset(name, "medium"),
		Narrow:  readAsset(name, "narrow"),
		Compact: readAsset(name, "compact"),
	}
}

// Load reads a custom art file. The block fills both the wide and
// narrow slots so a hand-made logo still participates in side-by-side
// and stacked layouts.
func Load(path string) (Variants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Variants{}, fmt.Errorf("art: read custom art %s: %w", path, err)
	}
	lines := splitLines(string(data))
	return Variants{Wide: lines, Narrow: lines}, nil
}

// DetectID returns the distro identifier used for logo selection: the
// ID field of /etc/os-release on Linux, "darwin" on macOS, the bare
// GOOS otherwise.
func DetectID() string {
	if runtime.GOOS == "darwin" {
		return "darwin"
	}

	data, err := os.ReadFile(osReleaseFile)
	if err != nil {
		return runtime.GOOS
	}
	for _, line := range strings.Split(string(data), "\n") {
		if v, ok := strings.CutPrefix(line, "ID="); ok {
			return strings.Trim(strings.TrimSpace(v), `"`)
		}
	}
	return runtime.GOOS
}

// ToSet colorizes each variant and wraps them for the layout engine.
// Missing variants become nil blocks, which removes their strategy
// tiers from layout selection.
func (v Variants) ToSet(p *color.Palette) layout.ArtSet {
	return layout.ArtSet{
		Wide:    block(v.Wide, p),
		Medium:  block(v.Medium, p),
		Narrow:  block(v.Narrow, p),
		Compact: block(v.Compact, p),
	}
}

func block(lines []string, p *color.Palette) *layout.ArtBlock {
	if len(lines) == 0 {
		return nil
	}
	return &layout.ArtBlock{Lines: Colorize(lines, p)}
}

// Colorize substitutes the {1}-{9} accent placeholders with styled
// segments. A {0} placeholder returns to unstyled text. A nil palette
// just strips the placeholders.
func Colorize(lines []string, p *color.Palette) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = colorizeLine(line, p)
	}
	return out
}

func colorizeLine(line string, p *color.Palette) string {
	var b strings.Builder
	var seg strings.Builder
	accent := 0

	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if p == nil || accent == 0 {
			b.WriteString(seg.String())
		} else {
			b.WriteString(p.Accent(accent).Render(seg.String()))
		}
		seg.Reset()
	}

	for i := 0; i < len(line); i++ {
		if line[i] == '{' && i+2 < len(line) && line[i+2] == '}' &&
			line[i+1] >= '0' && line[i+1] <= '9' {
			flush()
			accent = int(line[i+1] - '0')
			i += 2
			continue
		}
		seg.WriteByte(line[i])
	}
	flush()

	return b.String()
}

func readAsset(name, variant string) []string {
	data, err := assets.ReadFile("assets/" + name + "_" + variant + ".txt")
	if err != nil {
		return nil
	}
	return splitLines(string(data))
}

func splitLines(s string) []string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
