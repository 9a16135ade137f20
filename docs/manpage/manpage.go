// Package manpage generates a roff-formatted man page for slowfetch.
//
// The man page is generated at runtime from the real flag table, key
// map, and compiled-in version information, keeping documentation in
// sync with the code automatically.
//
// Usage:
//
//	slowfetch --man | man -l -
//	slowfetch --man > ~/.local/share/man/man1/slowfetch.1
package manpage

import (
	"fmt"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/display/tui"
)

// Generate produces a complete roff-formatted man(1) page for
// slowfetch. The version, commit, and date parameters are passed from
// the build-time linker variables so the man page always reflects the
// current build.
func Generate(version, commit, date string) string {
	var b strings.Builder

	writeHeader(&b, version)
	writeName(&b)
	writeSynopsis(&b)
	writeDescription(&b)
	writeOptions(&b)
	writeKeybindings(&b)
	writeConfiguration(&b)
	writeFiles(&b)
	writeExamples(&b)
	writeEnvironment(&b)
	writeExitStatus(&b)
	writeSeeAlso(&b)
	writeAuthors(&b)
	writeBugs(&b)
	writeFooter(&b, version, commit, date)

	return b.String()
}

// roffEscape escapes special roff characters in a string.
func roffEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `-`, `\-`)
	s = strings.ReplaceAll(s, `.`, `\&.`)
	return s
}

func writeHeader(b *strings.Builder, version string) {
	month := time.Now().Format("January 2006")
	fmt.Fprintf(b, ".TH SLOWFETCH 1 \"%s\" \"slowfetch %s\" \"User Commands\"\n", month, version)
}

func writeName(b *strings.Builder) {
	b.WriteString(`.SH NAME
slowfetch \- terminal system information banner
`)
}

func writeSynopsis(b *strings.Builder) {
	b.WriteString(`.SH SYNOPSIS
.B slowfetch
[\fIOPTIONS\fR]
`)
}

func writeDescription(b *strings.Builder) {
	b.WriteString(`.SH DESCRIPTION
.B slowfetch
prints a system information banner: OS identity, hardware readings, and
userspace details, drawn beside a distribution logo in boxed sections
sized to the terminal. All readings come from local sources (procfs,
sysctl, environment variables, and the occasional subprocess); nothing
touches the network.
.PP
The tool operates in several modes:
.IP \(bu 2
.B One\-shot mode
(default, no flags): Collects once, prints the banner, and exits.
.IP \(bu 2
.B Live mode
(\fB\-\-live\fR): Launches an interactive Bubbletea view. Collectors
re\-run on a refresh interval and the banner re\-renders on every
update and terminal resize. Section headers respond to mouse clicks.
.IP \(bu 2
.B Utility modes
(\fB\-\-list\-collectors\fR, \fB\-\-init\-config\fR,
\fB\-\-clear\-cache\fR, \fB\-\-man\fR, \fB\-\-version\fR): Inspect or
manage the installation without rendering a banner.
`)
}

func writeOptions(b *strings.Builder) {
	b.WriteString(`.SH OPTIONS
`)

	flags := []struct {
		flag string
		arg  string
		desc string
	}{
		{"config", "PATH", "Path to the YAML configuration file. Default: ~/.config/slowfetch/config.yaml."},
		{"os", "ID", "Force the ASCII art for a specific distribution (e.g. arch, debian, gentoo). Overrides detection from /etc/os\\-release. Unknown IDs fall back to a generic logo."},
		{"art", "PATH", "Load ASCII art from a file instead of the built\\-in logos. The file may use {1}\\-{9} placeholders for accent colors."},
		{"no\\-art", "", "Drop the art pane and render the sections alone."},
		{"image", "PATH", "Render an image pane instead of ASCII art. The terminal protocol is chosen by image.protocol in the configuration (auto\\-detected by default)."},
		{"no\\-color", "", "Disable all styling and print plain text. The NO_COLOR environment variable has the same effect."},
		{"live", "", "Launch the live view. See KEYBINDINGS for the available controls."},
		{"refresh", "DUR", "Collector re\\-run interval for live mode (e.g. \"2s\", \"10s\"). Values under one second are raised to one second. Overrides the config file setting."},
		{"term\\-width", "N", "Override terminal width detection. 0 (default) means auto\\-detect."},
		{"term\\-height", "N", "Override terminal height detection. 0 (default) means auto\\-detect."},
		{"list\\-collectors", "", "List the registered collectors with their descriptions and refresh intervals, then exit."},
		{"init\\-config", "", "Write the default configuration to the config path and exit. Refuses to overwrite an existing file."},
		{"clear\\-cache", "", "Delete cached probe results (the font verdict and package counts), then exit."},
		{"verbose", "", "Enable verbose (debug\\-level) logging to stderr."},
		{"version", "", "Print the version, commit hash, and build date, then exit."},
		{"man", "", "Print this man page to stdout in roff format. Pipe to man(1) for formatted viewing: \\fBslowfetch \\-\\-man | man \\-l \\-\\fR."},
	}

	for _, f := range flags {
		b.WriteString(".TP\n")
		if f.arg != "" {
			fmt.Fprintf(b, ".BR \\-\\-%s \" \\fI%s\\fR\"\n", f.flag, f.arg)
		} else {
			fmt.Fprintf(b, ".B \\-\\-%s\n", f.flag)
		}
		b.WriteString(f.desc + "\n")
	}
}

func writeKeybindings(b *strings.Builder) {
	b.WriteString(`.SH KEYBINDINGS
The following bindings are active in the live view (\fB\-\-live\fR).
They are read from the real key map, so this list cannot drift from the
code. Section headers also toggle on mouse click.
`)

	for _, e := range tui.KeyHelp() {
		fmt.Fprintf(b, ".TP\n.B %s\n%s\n", roffEscape(e[0]), e[1])
	}
}

func writeConfiguration(b *strings.Builder) {
	b.WriteString(`.SH CONFIGURATION
Configuration is read from a YAML file at
.B ~/.config/slowfetch/config.yaml
by default, or from the path specified with \fB\-\-config\fR. Every key
is optional; missing keys keep their defaults. Generate a complete
starting point with \fB\-\-init\-config\fR.
.PP
The configuration file is organized into the following top-level sections:
.SS general
.TP
.B cache_dir
Directory for cached probe results. Default: ~/.cache/slowfetch.
.TP
.B cache_ttl
Duration a cached font verdict remains valid (e.g., "168h"). Default: "168h".
.SS colors
.PP
Colors for each banner element:
.BR border ,
.BR title ,
.BR key ,
.BR value ,
and
.BR bar ,
plus an
.B accents
list of up to nine entries for the {1}\-{9} art placeholders. Values
accept ANSI color names ("cyan", "bright_red"), 256\-color codes
("208"), hex colors ("#87d7ff"), and "none" for unstyled output.
.SS art
.TP
.B os
Force the art for a specific distribution. Empty (default) detects from
/etc/os\-release.
.TP
.B path
Load art from a file instead of the built\-in set.
.TP
.B disabled
Drop the art pane entirely. Default: false.
.SS image
.TP
.B enabled
Render an image pane instead of ASCII art. Requires \fBpath\fR. Default: false.
.TP
.B path
The image file to render (PNG, JPEG, or GIF).
.TP
.B protocol
Terminal image protocol: "auto" (default), "kitty", or "unicode".
.SS fonts
.TP
.B nerd
Nerd Font glyph usage: "auto" (default) probes the terminal font,
"always" and "never" skip the probe. Patched fonts draw usage bars with
block glyphs; everything else gets plain ASCII.
.SS sections
.TP
.B core
OS, host, kernel, uptime, and terminal. Default: true.
.TP
.B hardware
CPU, GPU, memory, and disk. Default: true.
.TP
.B userspace
Shell, desktop, packages, and locale. Default: true.
.SS live
.TP
.B refresh
Duration between collector re\-runs in live mode (e.g., "2s").
Default: "2s".
`)
}

func writeFiles(b *strings.Builder) {
	b.WriteString(`.SH FILES
.TP
.I ~/.config/slowfetch/config.yaml
Primary configuration file (YAML).
.TP
.I ~/.cache/slowfetch/
Cache directory for slow probe results: the terminal font verdict and
package manager counts.
`)
}

func writeExamples(b *strings.Builder) {
	b.WriteString(`.SH EXAMPLES
Print the banner for the running system:
.PP
.nf
slowfetch
.fi
.PP
Print the banner with another distribution's logo:
.PP
.nf
slowfetch \-\-os gentoo
.fi
.PP
Plain output for scripts and pagers:
.PP
.nf
slowfetch \-\-no\-art \-\-no\-color
.fi
.PP
Render a wallpaper beside the sections:
.PP
.nf
slowfetch \-\-image ~/pictures/wall.png
.fi
.PP
Watch readings update in place:
.PP
.nf
slowfetch \-\-live \-\-refresh 5s
.fi
.PP
View this man page:
.PP
.nf
slowfetch \-\-man | man \-l \-
.fi
.PP
Install the man page permanently:
.PP
.nf
slowfetch \-\-man > ~/.local/share/man/man1/slowfetch.1
.fi
`)
}

func writeEnvironment(b *strings.Builder) {
	b.WriteString(`.SH ENVIRONMENT
.TP
.B SLOWFETCH_CONFIG
Override path to the configuration file.
.TP
.B NO_COLOR
Disable all styling when set, same as \fB\-\-no\-color\fR.
.TP
.B TERM_PROGRAM, TERM, KITTY_WINDOW_ID, WEZTERM_EXECUTABLE
Consulted when image.protocol is "auto" to recognize terminals that
speak the kitty graphics protocol.
.TP
.B SSH_TTY, TMUX
A remote or multiplexed session downgrades the kitty protocol to
unicode half\-blocks.
`)
}

func writeExitStatus(b *strings.Builder) {
	b.WriteString(".SH EXIT STATUS\n")
	b.WriteString(".TP\n.B 0\n")
	b.WriteString("Success.\n")
	b.WriteString(".TP\n.B 1\n")
	b.WriteString("Failure: invalid flags or configuration, an unreadable art or image file, or a live session error.\n")
}

func writeSeeAlso(b *strings.Builder) {
	b.WriteString(`.SH SEE ALSO
.BR fastfetch (1),
.BR neofetch (1),
.BR fc\-match (1),
.BR kitty (1)
`)
}

func writeAuthors(b *strings.Builder) {
	b.WriteString(`.SH AUTHORS
Tinyland Lab <https://gitlab.com/tinyland/lab>
`)
}

func writeBugs(b *strings.Builder) {
	b.WriteString(`.SH BUGS
Report bugs at <https://gitlab.com/tinyland/lab/slowfetch/\-/issues>.
`)
}

func writeFooter(b *strings.Builder, version, commit, date string) {
	fmt.Fprintf(b, ".SH VERSION\n%s (%s) built %s\n", version, commit, date)
}
