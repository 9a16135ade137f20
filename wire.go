package main

import (
	"fmt"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/collectors/core"
	"gitlab.com/tinyland/lab/slowfetch/collectors/hardware"
	"gitlab.com/tinyland/lab/slowfetch/collectors/userspace"
	"gitlab.com/tinyland/lab/slowfetch/config"
	"gitlab.com/tinyland/lab/slowfetch/display/banner"
	"gitlab.com/tinyland/lab/slowfetch/display/color"
	"gitlab.com/tinyland/lab/slowfetch/display/render"
)

// buildRegistry assembles the collector registry for the configured
// sections. Registration order is banner order.
func buildRegistry(cfg *config.Config, probeCache collectors.Cache, logger *slog.Logger) *collectors.Registry {
	reg := collectors.NewRegistry()
	if cfg.Sections.Core {
		reg.Register(core.New(logger))
	}
	if cfg.Sections.Hardware {
		reg.Register(hardware.New(probeCache, logger))
	}
	if cfg.Sections.Userspace {
		reg.Register(userspace.New(probeCache, logger))
	}
	return reg
}

// liveRegistry wraps every collector with the live refresh interval.
func liveRegistry(reg *collectors.Registry, interval time.Duration) *collectors.Registry {
	live := collectors.NewRegistry()
	for _, c := range reg.All() {
		live.Register(collectors.WithInterval(c, interval))
	}
	return live
}

// bannerConfig translates file configuration into banner assembly
// settings. The caller supplies the palette (nil for plain output) and
// the terminal size overrides.
func bannerConfig(cfg *config.Config, palette *color.Palette, probeCache collectors.Cache, logger *slog.Logger, width, height int) (banner.Config, error) {
	bcfg := banner.Config{
		Palette:    palette,
		OSOverride: cfg.Art.OS,
		ArtPath:    cfg.Art.Path,
		NoArt:      cfg.Art.Disabled,
		NerdFont:   cfg.Fonts.Nerd,
		TermWidth:  width,
		TermHeight: height,
		Logger:     logger,
		Cache:      probeCache,
		CacheTTL:   cfg.ProbeTTL(),
	}
	if cfg.Image.Enabled {
		protocol, err := render.ParseProtocol(cfg.Image.Protocol)
		if err != nil {
			return banner.Config{}, fmt.Errorf("image.protocol: %w", err)
		}
		bcfg.ImagePath = cfg.Image.Path
		bcfg.ImageProtocol = protocol
	}
	return bcfg, nil
}
