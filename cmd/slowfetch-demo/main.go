// Command slowfetch-demo renders the banner with canned data at a
// fixed geometry. Screenshots and layout work stay reproducible
// because nothing is probed from the machine running it.
//
// Usage:
//
//	slowfetch-demo [--width N] [--height N] [--os ID] [--no-color]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/display/banner"
	"gitlab.com/tinyland/lab/slowfetch/display/color"
)

func main() {
	termWidth := flag.Int("width", 100, "Terminal width to render at")
	termHeight := flag.Int("height", 30, "Terminal height to render at")
	osID := flag.String("os", "arch", "Logo to render")
	noColor := flag.Bool("no-color", false, "Disable all styling")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	var palette *color.Palette
	if !*noColor {
		p, err := color.NewPalette(color.DefaultPaletteSpec())
		if err != nil {
			fmt.Fprintf(os.Stderr, "slowfetch-demo: %v\n", err)
			os.Exit(1)
		}
		palette = p
	} else {
		color.ForceDisable()
	}

	b := banner.New(banner.Config{
		Palette:    palette,
		OSOverride: *osID,
		NerdFont:   "always",
		TermWidth:  *termWidth,
		TermHeight: *termHeight,
		Logger:     logger,
	})

	out, err := b.Render(context.Background(), collectors.MockResults())
	if err != nil {
		fmt.Fprintf(os.Stderr, "slowfetch-demo: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
