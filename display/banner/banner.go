// Package banner assembles the final summary from collector results.
//
// The banner styles each section's key/value rows, appends usage bars,
// resolves the left pane (OS logo, custom art file, or an image), and
// hands everything to the layout engine for terminal-size-aware
// composition. It never touches the network; the only slow path is the
// first font probe, whose verdict is cached.
package banner

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/display/art"
	"gitlab.com/tinyland/lab/slowfetch/display/color"
	"gitlab.com/tinyland/lab/slowfetch/display/layout"
	"gitlab.com/tinyland/lab/slowfetch/display/render"
	"gitlab.com/tinyland/lab/slowfetch/display/widgets"
	"gitlab.com/tinyland/lab/slowfetch/internal/font"
)

const (
	// fontCacheKey stores the detected terminal font family.
	fontCacheKey = "font"
	// fontCacheTTL is the default freshness window for a cached font
	// verdict. Fonts change rarely and the probe shells out to fc-match.
	fontCacheTTL = 7 * 24 * time.Hour
)

// Config controls banner assembly.
type Config struct {
	// Palette styles the chrome, keys, values, bars and art accents.
	// Nil renders plain text.
	Palette *color.Palette
	// OSOverride forces the named logo instead of the detected OS.
	OSOverride string
	// ArtPath loads the left pane from an art file instead of the
	// built-in logos.
	ArtPath string
	// NoArt drops the left pane entirely.
	NoArt bool
	// ImagePath renders an image pane instead of ASCII art.
	ImagePath string
	// ImageProtocol selects the image encoding. Auto probes the
	// terminal environment.
	ImageProtocol render.Protocol
	// NerdFont is "auto", "always" or "never" and decides whether
	// usage bars draw block glyphs or plain ASCII.
	NerdFont string
	// TermWidth overrides terminal width detection.
	TermWidth int
	// TermHeight overrides terminal height detection.
	TermHeight int
	// Logger for assembly diagnostics.
	Logger *slog.Logger
	// Cache persists the font probe verdict across runs. Nil disables
	// caching and every run probes again.
	Cache collectors.Cache
	// CacheTTL overrides how long a cached verdict stays fresh.
	// Zero keeps the seven-day default.
	CacheTTL time.Duration
}

// DefaultConfig returns assembly defaults: detected OS logo, detected
// terminal size, automatic font probing, no styling.
func DefaultConfig() Config {
	return Config{
		NerdFont: "auto",
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Banner assembles one summary from a set of collector results:
//  1. Decide the bar charset from the terminal font
//  2. Style the section rows and append usage bars
//  3. Resolve the left pane (image, custom art, OS logo, or none)
//  4. Compose the panes for the measured terminal
type Banner struct {
	config Config

	// The font verdict is stable for the life of the process, so one
	// probe serves every render. Live mode re-renders on each resize.
	fontOnce sync.Once
	barChar  widgets.BarStyle
}

// New creates a Banner with the given configuration.
// If Logger is nil, a no-op logger is used.
func New(cfg Config) *Banner {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.NerdFont == "" {
		cfg.NerdFont = "auto"
	}
	return &Banner{config: cfg}
}

// Render produces the complete summary for the given collector
// results. Results are consumed in order; nil entries (failed
// collectors) are skipped. The returned string ends with a newline and
// is ready to print as-is.
func (b *Banner) Render(ctx context.Context, results []*collectors.Result) (string, error) {
	return b.RenderAt(ctx, results, b.geometry())
}

// RenderAt is Render with an explicit target geometry. Live mode uses
// it to follow resize events instead of re-measuring the terminal.
func (b *Banner) RenderAt(ctx context.Context, results []*collectors.Result, geom layout.Geometry) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	// Step 1: decide the bar charset from the terminal font.
	barStyle := b.barStyle(ctx, results)

	// Step 2: style the section rows.
	sections := b.buildSections(results, barStyle)

	// Step 3: border chrome from the palette.
	style := b.boxStyle()

	// Step 4: an image pane takes priority over ASCII art.
	if b.config.ImagePath != "" {
		img, err := render.Open(b.config.ImagePath)
		if err != nil {
			return "", err
		}
		return render.ComposeImage(geom, img, b.config.ImageProtocol, sections, style), nil
	}

	// Step 5: resolve the art pane and compose.
	set, err := b.artSet()
	if err != nil {
		return "", err
	}
	return layout.Compose(geom, set, sections, style), nil
}

// buildSections converts collector results into styled layout
// sections. Nil results and empty values are dropped; a section with no
// surviving rows is dropped too. Fields carrying a percent reading get
// a usage bar appended after the value.
func (b *Banner) buildSections(results []*collectors.Result, barStyle widgets.BarStyle) []layout.Section {
	sections := make([]layout.Section, 0, len(results))
	for _, res := range results {
		if res == nil {
			continue
		}

		sec := layout.Section{Title: res.Title}
		for _, f := range res.Fields {
			if f.Value == "" {
				continue
			}
			value := b.styleValue(f.Value)
			if f.Percent >= 0 {
				value += " " + b.renderBar(f.Percent, barStyle)
			}
			sec.Pairs = append(sec.Pairs, layout.Pair{Key: b.styleKey(f.Key), Value: value})
		}

		if len(sec.Pairs) == 0 {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

// barStyle picks the bar charset. Overrides win; otherwise the terminal
// font decides, with patched fonts getting the block glyphs.
func (b *Banner) barStyle(ctx context.Context, results []*collectors.Result) widgets.BarStyle {
	switch b.config.NerdFont {
	case "always":
		return widgets.BarBlocks
	case "never":
		return widgets.BarASCII
	}

	b.fontOnce.Do(func() {
		b.barChar = widgets.BarASCII
		if font.IsNerd(b.fontName(ctx, terminalField(results))) {
			b.barChar = widgets.BarBlocks
		}
	})
	return b.barChar
}

// fontName returns the terminal font family, consulting the cache
// before running the detector. The verdict, including "unknown", is
// cached so repeated runs skip the config parsing and fc-match calls.
func (b *Banner) fontName(ctx context.Context, terminal string) string {
	if b.config.Cache != nil {
		name, fresh, err := b.config.Cache.Get(fontCacheKey, b.cacheTTL())
		if err != nil {
			b.config.Logger.Warn("banner: font cache read error", "error", err)
		} else if fresh {
			return name
		}
	}

	name := font.NewDetector(b.config.Logger).Find(ctx, terminal)

	if b.config.Cache != nil {
		if err := b.config.Cache.Set(fontCacheKey, name); err != nil {
			b.config.Logger.Warn("banner: font cache write error", "error", err)
		}
	}
	return name
}

func (b *Banner) cacheTTL() time.Duration {
	if b.config.CacheTTL > 0 {
		return b.config.CacheTTL
	}
	return fontCacheTTL
}

// renderBar draws the usage bar for one field.
func (b *Banner) renderBar(percent int, style widgets.BarStyle) string {
	cfg := widgets.DefaultBarConfig()
	cfg.Percent = percent
	cfg.Style = style
	if b.config.Palette != nil {
		cfg.Fill = b.config.Palette.Bar
	}
	return widgets.RenderBar(cfg)
}

// artSet resolves the left pane art. An explicit art file that cannot
// be read is an error; everything else falls back to the built-in
// logos.
func (b *Banner) artSet() (layout.ArtSet, error) {
	if b.config.NoArt {
		return layout.ArtSet{}, nil
	}

	if b.config.ArtPath != "" {
		v, err := art.Load(b.config.ArtPath)
		if err != nil {
			return layout.ArtSet{}, err
		}
		return v.ToSet(b.config.Palette), nil
	}

	id := b.config.OSOverride
	if id == "" {
		id = art.DetectID()
	}
	return art.For(id).ToSet(b.config.Palette), nil
}

// geometry returns the compose target size, honoring overrides.
func (b *Banner) geometry() layout.Geometry {
	geom := layout.Geometry{Columns: b.config.TermWidth, Rows: b.config.TermHeight}
	if geom.Columns > 0 && geom.Rows > 0 {
		return geom
	}

	detected := layout.DetectGeometry()
	if geom.Columns <= 0 {
		geom.Columns = detected.Columns
	}
	if geom.Rows <= 0 {
		geom.Rows = detected.Rows
	}
	return geom
}

// boxStyle converts the palette into border chrome. Section titles are
// styled by the box itself, so they stay plain in the section data.
func (b *Banner) boxStyle() *layout.Style {
	if b.config.Palette == nil {
		return nil
	}
	return &layout.Style{
		Border: b.config.Palette.Border,
		Title:  b.config.Palette.Title,
	}
}

func (b *Banner) styleKey(s string) string {
	if b.config.Palette == nil {
		return s
	}
	return b.config.Palette.Key.Render(s)
}

func (b *Banner) styleValue(s string) string {
	if b.config.Palette == nil {
		return s
	}
	return b.config.Palette.Value.Render(s)
}

// terminalField pulls the Terminal row out of the results so the font
// probe can start with the matching config file.
func terminalField(results []*collectors.Result) string {
	for _, res := range results {
		if res == nil {
			continue
		}
		for _, f := range res.Fields {
			if f.Key == "Terminal" {
				return f.Value
			}
		}
	}
	return ""
}
