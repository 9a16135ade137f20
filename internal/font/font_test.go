package font

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// newTestDetector returns a detector rooted in a throwaway home
// directory with subprocess execution disabled.
func newTestDetector(t *testing.T) (*Detector, string) {
	t.Helper()

	home := t.TempDir()
	d := NewDetector(nil)
	d.homeDir = func() (string, error) { return home, nil }
	d.execCommand = func(_ context.Context, name string, _ ...string) ([]byte, error) {
		return nil, fmt.Errorf("exec disabled in tests: %s", name)
	}
	return d, home
}

func writeHome(t *testing.T, home, rel, content string) {
	t.Helper()

	path := filepath.Join(home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestFindKitty(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/kitty/kitty.conf", `
# font_family Commented Out
bold_font auto
font_family JetBrainsMono Nerd Font
font_size 12
`)

	got := d.Find(context.Background(), "Kitty")
	if got != "JetBrainsMono Nerd Font" {
		t.Errorf("Find = %q, want %q", got, "JetBrainsMono Nerd Font")
	}
}

func TestFindKittyIgnoresLookalikeKeys(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/kitty/kitty.conf", `
font_family_not_a_real_key Bogus
font_size 12
`)

	if got := d.Find(context.Background(), "Kitty"); got != Unknown {
		t.Errorf("Find = %q, want %q", got, Unknown)
	}
}

func TestFindAlacrittyTOML(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/alacritty/alacritty.toml", `
[window]
opacity = 0.95

[font.normal]
family = "Fira Code"
style = "Regular"

[font.bold]
family = "Fira Code"
`)

	got := d.Find(context.Background(), "Alacritty")
	if got != "Fira Code" {
		t.Errorf("Find = %q, want %q", got, "Fira Code")
	}
}

func TestFindAlacrittyTOMLBareFontTable(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/alacritty/alacritty.toml", `
[font]
family = "Hack"
size = 11.0
`)

	got := d.Find(context.Background(), "Alacritty")
	if got != "Hack" {
		t.Errorf("Find = %q, want %q", got, "Hack")
	}
}

func TestFindAlacrittyYAML(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/alacritty/alacritty.yml", `
window:
  opacity: 0.95
font:
  normal:
    family: "Iosevka Term"
  size: 11
`)

	got := d.Find(context.Background(), "Alacritty")
	if got != "Iosevka Term" {
		t.Errorf("Find = %q, want %q", got, "Iosevka Term")
	}
}

func TestFindFoot(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/foot/foot.ini", `
[main]
font=JetBrains Mono:size=12
dpi-aware=yes
`)

	got := d.Find(context.Background(), "Foot")
	if got != "JetBrains Mono" {
		t.Errorf("Find = %q, want %q", got, "JetBrains Mono")
	}
}

func TestFindGhostty(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/ghostty/config", `
# comment
font-family-bold = Berkeley Mono Bold
font-family = "Berkeley Mono"
font-size = 13
`)

	got := d.Find(context.Background(), "Ghostty")
	if got != "Berkeley Mono" {
		t.Errorf("Find = %q, want %q", got, "Berkeley Mono")
	}
}

func TestFindKonsole(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".local/share/konsole/NotAProfile.txt", "Font=Bogus,10\n")
	writeHome(t, home, ".local/share/konsole/Shell.profile", `
[Appearance]
ColorScheme=Breeze
Font=Hack,11,-1,5,50,0,0,0,0,0
`)

	got := d.Find(context.Background(), "Konsole")
	if got != "Hack" {
		t.Errorf("Find = %q, want %q", got, "Hack")
	}
}

func TestFindGnomeTerminalDconf(t *testing.T) {
	d, _ := newTestDetector(t)
	d.execCommand = func(_ context.Context, name string, _ ...string) ([]byte, error) {
		if name != "dconf" {
			return nil, fmt.Errorf("unexpected command %s", name)
		}
		out := "[:b1dcc9dd-5262-4d8d-a863-c897e6d979b9]\n" +
			"font='Source Code Pro 10'\n" +
			"use-system-font=false\n"
		return []byte(out), nil
	}

	got := d.Find(context.Background(), "Gnome Terminal")
	if got != "Source Code Pro" {
		t.Errorf("Find = %q, want %q", got, "Source Code Pro")
	}
}

func TestFindGnomeTerminalGsettingsFallback(t *testing.T) {
	d, _ := newTestDetector(t)
	d.execCommand = func(_ context.Context, name string, _ ...string) ([]byte, error) {
		switch name {
		case "dconf":
			return nil, errors.New("dconf: command not found")
		case "gsettings":
			return []byte("'Ubuntu Mono 13'\n"), nil
		}
		return nil, fmt.Errorf("unexpected command %s", name)
	}

	got := d.Find(context.Background(), "Gnome Terminal")
	if got != "Ubuntu Mono" {
		t.Errorf("Find = %q, want %q", got, "Ubuntu Mono")
	}
}

func TestFindPrefersDetectedTerminal(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/kitty/kitty.conf", "font_family Kitty Font X\n")
	writeHome(t, home, ".config/foot/foot.ini", "font=Foot Font X:size=10\n")

	if got := d.Find(context.Background(), "Foot"); got != "Foot Font X" {
		t.Errorf("Find(Foot) = %q, want %q", got, "Foot Font X")
	}
	if got := d.Find(context.Background(), "Kitty"); got != "Kitty Font X" {
		t.Errorf("Find(Kitty) = %q, want %q", got, "Kitty Font X")
	}
}

func TestFindFallsBackAcrossTerminals(t *testing.T) {
	d, home := newTestDetector(t)
	writeHome(t, home, ".config/kitty/kitty.conf", "font_family Fallback Font\n")

	// Detection said st, but only a kitty config exists on disk.
	got := d.Find(context.Background(), "St")
	if got != "Fallback Font" {
		t.Errorf("Find = %q, want %q", got, "Fallback Font")
	}
}

func TestFindNothing(t *testing.T) {
	d, _ := newTestDetector(t)

	if got := d.Find(context.Background(), "Kitty"); got != Unknown {
		t.Errorf("Find = %q, want %q", got, Unknown)
	}
}

func TestCleanNameStripsOneStyleSuffix(t *testing.T) {
	d, _ := newTestDetector(t)

	tests := []struct {
		in   string
		want string
	}{
		{"Hack Regular", "Hack"},
		{"Fira Code SemiBold", "Fira Code"},
		{"Foo Bold Italic", "Foo Bold"},
		{"JetBrainsMono Nerd Font", "JetBrainsMono Nerd Font"},
		{"  Hack  ", "Hack"},
	}

	for _, tt := range tests {
		if got := d.cleanName(context.Background(), tt.in); got != tt.want {
			t.Errorf("cleanName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveAlias(t *testing.T) {
	d, _ := newTestDetector(t)

	var gotArgs []string
	d.execCommand = func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "fc-match" {
			return nil, fmt.Errorf("unexpected command %s", name)
		}
		gotArgs = args
		return []byte("DejaVu Sans Mono\n"), nil
	}

	if got := d.cleanName(context.Background(), "monospace"); got != "DejaVu Sans Mono" {
		t.Errorf("cleanName(monospace) = %q, want %q", got, "DejaVu Sans Mono")
	}
	if len(gotArgs) != 3 || gotArgs[0] != "monospace" {
		t.Errorf("fc-match args = %v", gotArgs)
	}
}

func TestResolveAliasSkipsRealNames(t *testing.T) {
	d, _ := newTestDetector(t)

	execCalled := false
	d.execCommand = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		execCalled = true
		return nil, errors.New("should not run")
	}

	if got := d.cleanName(context.Background(), "Fira Code"); got != "Fira Code" {
		t.Errorf("cleanName = %q, want %q", got, "Fira Code")
	}
	if execCalled {
		t.Error("fc-match ran for a non-alias name")
	}
}

func TestResolveAliasExecFailure(t *testing.T) {
	d, _ := newTestDetector(t)

	if got := d.cleanName(context.Background(), "monospace"); got != "monospace" {
		t.Errorf("cleanName = %q, want %q", got, "monospace")
	}
}

func TestStripPointSize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"JetBrains Mono 11", "JetBrains Mono"},
		{"Source Code Pro 10.5", "Source Code Pro"},
		{"Monospace", "Monospace"},
		{"Comic Sans", "Comic Sans"},
		{"Mono 11", "Mono"},
	}

	for _, tt := range tests {
		if got := stripPointSize(tt.in); got != tt.want {
			t.Errorf("stripPointSize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsNerd(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"JetBrainsMono Nerd Font", true},
		{"FiraCode NF", true},
		{"Hack NFM", true},
		{"Hack", false},
		{"Fira Code", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := IsNerd(tt.name); got != tt.want {
			t.Errorf("IsNerd(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
