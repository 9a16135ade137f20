// Package userspace collects the userspace section of the banner:
// installed package counts, shell, terminal, window manager, and
// desktop environment.
package userspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
)

const (
	// collectorName is the unique identifier for this collector.
	collectorName = "userspace"

	// collectorTitle is the banner section heading.
	collectorTitle = "Userspace"

	// collectorDescription describes what this collector gathers.
	collectorDescription = "Package counts, shell, terminal, WM and DE"

	// defaultInterval is long because these readings barely move while
	// a session is up.
	defaultInterval = 5 * time.Minute

	// packagesCacheKey and packagesCacheTTL cover the package count
	// probes, the slowest thing this collector does.
	packagesCacheKey = "packages"
	packagesCacheTTL = 1 * time.Hour
)

// Collector implements collectors.Collector for the userspace section.
type Collector struct {
	logger *slog.Logger
	cache  collectors.Cache

	// root prefixes the package database paths and procDir points at
	// the process table. Both are overridable for testing.
	root    string
	procDir string

	getenv      func(string) string
	lookPath    func(file string) (string, error)
	execCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New creates a userspace collector. The cache may be nil, in which
// case package counting runs uncached. If logger is nil, a no-op
// logger is used.
func New(cache collectors.Cache, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Collector{
		logger:   logger,
		cache:    cache,
		root:     "/",
		procDir:  "/proc",
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		execCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// Name returns the collector's unique identifier.
func (c *Collector) Name() string {
	return collectorName
}

// Description returns a human-readable description of what this
// collector gathers.
func (c *Collector) Description() string {
	return collectorDescription
}

// Interval returns the refresh interval used by live mode.
func (c *Collector) Interval() time.Duration {
	return defaultInterval
}

// Collect gathers the Packages, Terminal, Shell, WM, and DE fields.
// Readings that cannot be taken are omitted rather than rendered
// blank.
func (c *Collector) Collect(ctx context.Context) (*collectors.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var fields []collectors.Field

	if pkgs := c.readPackages(ctx); pkgs != "" {
		fields = append(fields, collectors.NewField("Packages", pkgs))
	}
	if term := c.readTerminal(); term != "" {
		fields = append(fields, collectors.NewField("Terminal", term))
	}
	if shell := c.readShell(ctx); shell != "" {
		fields = append(fields, collectors.NewField("Shell", shell))
	}
	if wm := c.readWM(); wm != "" {
		fields = append(fields, collectors.NewField("WM", wm))
	}
	if de := c.readDE(); de != "" {
		fields = append(fields, collectors.NewField("DE", de))
	}

	c.logger.Debug("userspace collected", slog.Int("fields", len(fields)))

	return &collectors.Result{
		Collector: collectorName,
		Title:     collectorTitle,
		Timestamp: time.Now(),
		Fields:    fields,
	}, nil
}

// readPackages counts installed packages per manager and renders them
// as "1843 (pacman), 12 (flatpak)". Counting walks package databases,
// so fresh cache hits short-circuit the probes.
func (c *Collector) readPackages(ctx context.Context) string {
	if c.cache != nil {
		if v, fresh, err := c.cache.Get(packagesCacheKey, packagesCacheTTL); err == nil && fresh && v != "" {
			return v
		}
	}

	var parts []string
	add := func(count int, manager string) {
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%d (%s)", count, manager))
		}
	}

	add(c.countDirEntries("var/lib/pacman/local"), "pacman")
	add(c.countDpkg(), "dpkg")
	add(c.countRPM(ctx), "rpm")
	add(c.countDirEntries("var/lib/flatpak/app"), "flatpak")
	add(c.countNix(ctx), "nix")
	add(c.countXBPS(), "xbps")

	value := strings.Join(parts, ", ")
	if value != "" && c.cache != nil {
		if err := c.cache.Set(packagesCacheKey, value); err != nil {
			c.logger.Debug("packages cache write failed", slog.String("error", err.Error()))
		}
	}
	return value
}

// countDirEntries counts entries under a root-relative directory.
// Pacman keeps one directory per package, flatpak one per app.
func (c *Collector) countDirEntries(rel string) int {
	entries, err := os.ReadDir(filepath.Join(c.root, rel))
	if err != nil {
		return 0
	}
	return len(entries)
}

// countDpkg counts installed paragraphs in the dpkg status database.
func (c *Collector) countDpkg() int {
	data, err := os.ReadFile(filepath.Join(c.root, "var/lib/dpkg/status"))
	if err != nil {
		return 0
	}
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if line == "Status: install ok installed" {
			count++
		}
	}
	return count
}

// countRPM queries rpm when its database exists. The query itself is
// the only reliable count; the database layout varies by version.
func (c *Collector) countRPM(ctx context.Context) int {
	if !c.pathExists("var/lib/rpm/rpmdb.sqlite") && !c.pathExists("var/lib/rpm/Packages") {
		return 0
	}
	if _, err := c.lookPath("rpm"); err != nil {
		return 0
	}
	out, err := c.execCommand(ctx, "rpm", "-qa")
	if err != nil {
		return 0
	}
	return countNonEmptyLines(string(out))
}

// countNix counts packages in the user's nix profile.
func (c *Collector) countNix(ctx context.Context) int {
	home := c.getenv("HOME")
	if home == "" {
		return 0
	}
	if _, err := os.Stat(filepath.Join(home, ".nix-profile", "manifest.nix")); err != nil {
		return 0
	}
	if _, err := c.lookPath("nix-env"); err != nil {
		return 0
	}
	out, err := c.execCommand(ctx, "nix-env", "-q")
	if err != nil {
		return 0
	}
	return countNonEmptyLines(string(out))
}

// countXBPS counts package directories in the xbps database.
func (c *Collector) countXBPS() int {
	entries, err := os.ReadDir(filepath.Join(c.root, "var/db/xbps"))
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if e.IsDir() {
			count++
		}
	}
	return count
}

func (c *Collector) pathExists(rel string) bool {
	_, err := os.Stat(filepath.Join(c.root, rel))
	return err == nil
}

func countNonEmptyLines(s string) int {
	count := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// readShell resolves $SHELL to a display name with its version, e.g.
// "Zsh 5.9".
func (c *Collector) readShell(ctx context.Context) string {
	shellPath := c.getenv("SHELL")
	if shellPath == "" {
		return ""
	}

	display := capitalize(filepath.Base(shellPath))
	out, err := c.execCommand(ctx, shellPath, "--version")
	if err == nil {
		if v := parseShellVersion(string(out)); v != "" {
			display += " " + v
		}
	}
	return display
}

// parseShellVersion extracts the bare version from a shell's --version
// banner: the first whitespace-separated word starting with a digit,
// truncated at '(' or '-'. "GNU bash, version 5.2.26(1)-release"
// yields "5.2.26".
func parseShellVersion(out string) string {
	first, _, _ := strings.Cut(out, "\n")
	for _, word := range strings.Fields(first) {
		if word[0] < '0' || word[0] > '9' {
			continue
		}
		if i := strings.IndexAny(word, "(-"); i >= 0 {
			word = word[:i]
		}
		return word
	}
	return ""
}

// readTerminal resolves the terminal emulator name. Terminal-specific
// environment variables are checked first because TERM_PROGRAM is far
// from universal.
func (c *Collector) readTerminal() string {
	switch {
	case c.getenv("KITTY_PID") != "":
		return "Kitty"
	case c.getenv("KONSOLE_VERSION") != "":
		return "Konsole"
	case c.getenv("GNOME_TERMINAL_SCREEN") != "":
		return "Gnome Terminal"
	}

	term := c.getenv("TERM_PROGRAM")
	if term == "" {
		term = c.getenv("TERM")
	}
	if term == "" {
		return ""
	}
	term = strings.TrimSuffix(term, "-256color")
	term = strings.TrimSuffix(term, "-color")
	return capitalize(term)
}

// knownWMs maps process names to display names. gnome-shell appears
// because mutter runs inside it rather than as its own process.
var knownWMs = []struct{ match, display string }{
	{"hyprland", "Hyprland"},
	{"sway", "Sway"},
	{"river", "River"},
	{"wayfire", "Wayfire"},
	{"labwc", "LabWC"},
	{"dwl", "dwl"},
	{"niri", "Niri"},
	{"kwin", "KWin"},
	{"mutter", "Mutter"},
	{"gnome-shell", "Mutter"},
	{"weston", "Weston"},
	{"cage", "Cage"},
	{"gamescope", "Gamescope"},
	{"openbox", "Openbox"},
	{"i3", "i3"},
	{"bspwm", "bspwm"},
	{"dwm", "dwm"},
	{"awesome", "Awesome"},
	{"xfwm4", "Xfwm4"},
	{"marco", "Marco"},
	{"metacity", "Metacity"},
	{"compiz", "Compiz"},
	{"enlightenment", "Enlightenment"},
	{"fluxbox", "Fluxbox"},
	{"icewm", "IceWM"},
	{"xmonad", "XMonad"},
	{"qtile", "Qtile"},
	{"herbstluftwm", "herbstluftwm"},
}

// readWM resolves the window manager by scanning the process table,
// falling back to desktop environment variables.
func (c *Collector) readWM() string {
	if wm := c.scanProcesses(); wm != "" {
		return wm
	}
	if v := c.getenv("XDG_CURRENT_DESKTOP"); v != "" {
		return capitalize(lastColonPart(v))
	}
	if v := c.getenv("DESKTOP_SESSION"); v != "" {
		return capitalize(v)
	}
	return ""
}

// scanProcesses walks /proc PID entries and matches argv[0] basenames
// against the known WM list. Reading /proc directly beats shelling out
// to ps.
func (c *Collector) scanProcesses() string {
	entries, err := os.ReadDir(c.procDir)
	if err != nil {
		return ""
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || name[0] < '0' || name[0] > '9' {
			continue
		}

		data, err := os.ReadFile(filepath.Join(c.procDir, name, "cmdline"))
		if err != nil || len(data) == 0 {
			continue
		}

		// cmdline is NUL-separated argv.
		argv0 := string(data)
		if i := strings.IndexByte(argv0, 0); i >= 0 {
			argv0 = argv0[:i]
		}
		base := strings.ToLower(filepath.Base(argv0))

		for _, wm := range knownWMs {
			if base == wm.match || strings.HasPrefix(base, wm.match+"_") {
				return wm.display
			}
		}
	}
	return ""
}

// readDE resolves the desktop environment row with the session type
// appended, e.g. "GNOME (wayland)".
func (c *Collector) readDE() string {
	de := c.getenv("XDG_CURRENT_DESKTOP")
	if de == "" {
		de = c.getenv("DESKTOP_SESSION")
	}
	if de == "" {
		return ""
	}

	de = capitalize(lastColonPart(de))
	if session := c.getenv("XDG_SESSION_TYPE"); session == "wayland" || session == "x11" {
		de += " (" + session + ")"
	}
	return de
}

// lastColonPart strips vendor prefixes like "ubuntu:GNOME".
func lastColonPart(s string) string {
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Compile-time interface compliance check.
var _ collectors.Collector = (*Collector)(nil)
