// Package font finds the terminal emulator's configured font by
// parsing its config file. The result decides whether usage bars can
// use block glyphs or have to fall back to plain ASCII.
package font

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Unknown is returned when no terminal config yields a font name.
const Unknown = "unknown"

// styleSuffixes are trimmed from the end of a family name. Only the
// first match is removed.
var styleSuffixes = []string{
	" Regular",
	" Medium",
	" Bold",
	" Italic",
	" Light",
	" Thin",
	" SemiBold",
	" ExtraBold",
	" Black",
}

// genericAliases are fontconfig aliases that need fc-match to resolve
// into a real family name.
var genericAliases = map[string]bool{
	"monospace":  true,
	"mono":       true,
	"sans-serif": true,
	"serif":      true,
	"system-ui":  true,
}

// Detector probes terminal emulator configs for the font family in
// use. All filesystem and subprocess access goes through injectable
// functions so tests can run against fixtures.
type Detector struct {
	logger *slog.Logger

	homeDir     func() (string, error)
	readFile    func(name string) ([]byte, error)
	readDir     func(name string) ([]fs.DirEntry, error)
	execCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewDetector creates a font detector. If logger is nil, a no-op
// logger is used.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Detector{
		logger:   logger,
		homeDir:  os.UserHomeDir,
		readFile: os.ReadFile,
		readDir:  os.ReadDir,
		execCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Find returns the family name of the terminal's configured font, or
// Unknown. terminal is the emulator name as it appears on the banner
// ("Kitty", "Foot", ...); the matching config is tried first, then
// every known config in turn.
func (d *Detector) Find(ctx context.Context, terminal string) string {
	probes := []struct {
		terminal string
		probe    func(context.Context) (string, bool)
	}{
		{"kitty", d.fromKitty},
		{"alacritty", d.fromAlacritty},
		{"foot", d.fromFoot},
		{"ghostty", d.fromGhostty},
		{"konsole", d.fromKonsole},
		{"gnome terminal", d.fromGnomeTerminal},
	}

	want := strings.ToLower(strings.TrimSpace(terminal))
	for _, p := range probes {
		if p.terminal != want {
			continue
		}
		if name, ok := p.probe(ctx); ok {
			d.logger.Debug("font found", slog.String("terminal", p.terminal), slog.String("font", name))
			return name
		}
	}

	// The detected terminal had no usable config. Try everything; the
	// user may be inside tmux or an SSH session where detection named
	// the wrong emulator.
	for _, p := range probes {
		if name, ok := p.probe(ctx); ok {
			d.logger.Debug("font found", slog.String("terminal", p.terminal), slog.String("font", name))
			return name
		}
	}

	return Unknown
}

// IsNerd reports whether a font name looks like a nerd font patch.
// Matching on the name is not airtight, but it beats feeding glyphs
// to a font that cannot draw them.
func IsNerd(name string) bool {
	return strings.Contains(name, "NF") || strings.Contains(name, "Nerd Font")
}

// readConfig reads a file relative to the user's home directory.
func (d *Detector) readConfig(rel string) (string, bool) {
	home, err := d.homeDir()
	if err != nil {
		return "", false
	}
	b, err := d.readFile(filepath.Join(home, rel))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// fromKitty scans ~/.config/kitty/kitty.conf for a font_family line.
func (d *Detector) fromKitty(ctx context.Context) (string, bool) {
	content, ok := d.readConfig(".config/kitty/kitty.conf")
	if !ok {
		return "", false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		rest, ok := strings.CutPrefix(line, "font_family")
		if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		if name := strings.TrimSpace(rest); name != "" {
			return d.cleanName(ctx, name), true
		}
	}
	return "", false
}

// alacrittyFont matches the font table of both alacritty config
// formats. A family directly under [font] is accepted too.
type alacrittyFont struct {
	Font struct {
		Family string `toml:"family" yaml:"family"`
		Normal struct {
			Family string `toml:"family" yaml:"family"`
		} `toml:"normal" yaml:"normal"`
	} `toml:"font" yaml:"font"`
}

func (f alacrittyFont) family() string {
	if f.Font.Normal.Family != "" {
		return f.Font.Normal.Family
	}
	return f.Font.Family
}

// fromAlacritty tries the TOML config first, then the legacy YAML one.
func (d *Detector) fromAlacritty(ctx context.Context) (string, bool) {
	if content, ok := d.readConfig(".config/alacritty/alacritty.toml"); ok {
		var cfg alacrittyFont
		if _, err := toml.Decode(content, &cfg); err == nil {
			if family := cfg.family(); family != "" {
				return d.cleanName(ctx, family), true
			}
		}
	}

	if content, ok := d.readConfig(".config/alacritty/alacritty.yml"); ok {
		var cfg alacrittyFont
		if err := yaml.Unmarshal([]byte(content), &cfg); err == nil {
			if family := cfg.family(); family != "" {
				return d.cleanName(ctx, family), true
			}
		}
	}

	return "", false
}

// fromFoot scans ~/.config/foot/foot.ini for a font= line. The value
// carries fontconfig attributes after a colon, e.g.
// "font=JetBrains Mono:size=12".
func (d *Detector) fromFoot(ctx context.Context) (string, bool) {
	content, ok := d.readConfig(".config/foot/foot.ini")
	if !ok {
		return "", false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		value, found := strings.CutPrefix(line, "font=")
		if !found {
			continue
		}
		name, _, _ := strings.Cut(value, ":")
		if name = strings.TrimSpace(name); name != "" {
			return d.cleanName(ctx, name), true
		}
	}
	return "", false
}

// fromGhostty scans ~/.config/ghostty/config for a font-family line,
// skipping the font-family-bold and friends.
func (d *Detector) fromGhostty(ctx context.Context) (string, bool) {
	content, ok := d.readConfig(".config/ghostty/config")
	if !ok {
		return "", false
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		rest, found := strings.CutPrefix(line, "font-family")
		if !found || rest == "" {
			continue
		}
		if rest[0] != ' ' && rest[0] != '\t' && rest[0] != '=' {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return d.cleanName(ctx, name), true
		}
	}
	return "", false
}

// fromKonsole scans ~/.local/share/konsole/*.profile files for a
// Font= line, e.g. "Font=JetBrains Mono,12,-1,5,50,0,0,0,0,0".
func (d *Detector) fromKonsole(ctx context.Context) (string, bool) {
	home, err := d.homeDir()
	if err != nil {
		return "", false
	}
	dir := filepath.Join(home, ".local/share/konsole")

	entries, err := d.readDir(dir)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".profile") {
			continue
		}
		b, err := d.readFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(b), "\n") {
			value, found := strings.CutPrefix(strings.TrimSpace(line), "Font=")
			if !found {
				continue
			}
			name, _, _ := strings.Cut(value, ",")
			if name = strings.TrimSpace(name); name != "" {
				return d.cleanName(ctx, name), true
			}
		}
	}
	return "", false
}

// fromGnomeTerminal asks dconf for the profile font, falling back to
// the desktop-wide monospace font that gnome-terminal uses when no
// profile overrides it.
func (d *Detector) fromGnomeTerminal(ctx context.Context) (string, bool) {
	if out, err := d.execCommand(ctx, "dconf", "dump", "/org/gnome/terminal/legacy/profiles:/"); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			value, found := strings.CutPrefix(strings.TrimSpace(line), "font=")
			if !found {
				continue
			}
			name := stripPointSize(strings.Trim(value, "'"))
			if name != "" {
				return d.cleanName(ctx, name), true
			}
		}
	}

	out, err := d.execCommand(ctx, "gsettings", "get", "org.gnome.desktop.interface", "monospace-font-name")
	if err != nil {
		return "", false
	}
	name := stripPointSize(strings.Trim(strings.TrimSpace(string(out)), "'"))
	if name == "" {
		return "", false
	}
	return d.cleanName(ctx, name), true
}

// stripPointSize removes a trailing numeric point size from values
// like "JetBrains Mono 11".
func stripPointSize(name string) string {
	i := strings.LastIndexByte(name, ' ')
	if i <= 0 {
		return name
	}
	if _, err := strconv.ParseFloat(name[i+1:], 64); err != nil {
		return name
	}
	return name[:i]
}

// cleanName resolves generic aliases and strips one style suffix.
func (d *Detector) cleanName(ctx context.Context, name string) string {
	name = d.resolveAlias(ctx, strings.TrimSpace(name))

	for _, suffix := range styleSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			return trimmed
		}
	}
	return name
}

// resolveAlias turns fontconfig aliases like "monospace" into the
// family they resolve to on this machine.
func (d *Detector) resolveAlias(ctx context.Context, name string) string {
	if !genericAliases[strings.ToLower(name)] {
		return name
	}

	out, err := d.execCommand(ctx, "fc-match", name, "-f", "%{family}")
	if err != nil {
		d.logger.Debug("fc-match failed", slog.String("alias", name), slog.Any("error", err))
		return name
	}
	if resolved := strings.TrimSpace(string(out)); resolved != "" {
		return resolved
	}
	return name
}
