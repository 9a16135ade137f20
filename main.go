// slowfetch prints a system information banner: OS identity, hardware
// readings, and userspace details drawn beside a distribution logo in
// boxed sections sized to the terminal.
//
// Usage:
//
//	slowfetch [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/slowfetch/config.yaml)
//	-os string        Force the ASCII art for a distribution (arch|debian|...)
//	-art string       Load ASCII art from a file
//	-no-art           Drop the art pane
//	-image string     Render an image pane instead of ASCII art
//	-no-color         Disable all styling
//	-live             Launch the live Bubbletea view
//	-refresh dur      Collector re-run interval for live mode
//	-term-width n     Terminal width override
//	-term-height n    Terminal height override
//	-list-collectors  List registered collectors and exit
//	-init-config      Write the default configuration and exit
//	-clear-cache      Delete cached probe results and exit
//	-man              Print man page to stdout in roff format
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/slowfetch/cache"
	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/config"
	"gitlab.com/tinyland/lab/slowfetch/display/banner"
	"gitlab.com/tinyland/lab/slowfetch/display/color"
	"gitlab.com/tinyland/lab/slowfetch/display/tui"
	"gitlab.com/tinyland/lab/slowfetch/docs/manpage"
)

func main() {
	var (
		configPath     = flag.String("config", "", "Path to configuration file (default: ~/.config/slowfetch/config.yaml)")
		osOverride     = flag.String("os", "", "Force the ASCII art for a distribution (e.g. arch, debian)")
		artPath        = flag.String("art", "", "Load ASCII art from a file")
		noArt          = flag.Bool("no-art", false, "Drop the art pane")
		imagePath      = flag.String("image", "", "Render an image pane instead of ASCII art")
		noColor        = flag.Bool("no-color", false, "Disable all styling")
		runLive        = flag.Bool("live", false, "Launch the live Bubbletea view")
		refresh        = flag.Duration("refresh", 0, "Collector re-run interval for live mode (0 = config value)")
		termWidth      = flag.Int("term-width", 0, "Terminal width override (0 = auto-detect)")
		termHeight     = flag.Int("term-height", 0, "Terminal height override (0 = auto-detect)")
		listCollectors = flag.Bool("list-collectors", false, "List registered collectors and exit")
		initConfig     = flag.Bool("init-config", false, "Write the default configuration and exit")
		clearCache     = flag.Bool("clear-cache", false, "Delete cached probe results and exit")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion    = flag.Bool("version", false, "Print version and exit")
		showMan        = flag.Bool("man", false, "Print man page to stdout in roff format")
	)
	flag.Parse()

	// ---------------------------------------------------------------
	// Commands that don't require config
	// ---------------------------------------------------------------

	if *showVersion {
		fmt.Printf("slowfetch %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *showMan {
		fmt.Print(manpage.Generate(version, commit, date))
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if *initConfig {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "refusing to overwrite existing config: %s\n", path)
			os.Exit(1)
		}
		if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration and apply CLI overrides
	// ---------------------------------------------------------------

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *osOverride != "" {
		cfg.Art.OS = *osOverride
	}
	if *artPath != "" {
		cfg.Art.Path = *artPath
	}
	if *noArt {
		cfg.Art.Disabled = true
	}
	if *imagePath != "" {
		cfg.Image.Enabled = true
		cfg.Image.Path = *imagePath
	}
	if *refresh > 0 {
		cfg.Live.Refresh = refresh.String()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// ---------------------------------------------------------------
	// Cache management
	// ---------------------------------------------------------------

	if *clearCache {
		store, err := cache.NewStore(cfg.General.CacheDir, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cache error: %v\n", err)
			os.Exit(1)
		}
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "cache clear failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "cleared cache at %s\n", cfg.General.CacheDir)
		os.Exit(0)
	}

	// A broken cache dir degrades to uncached probes instead of
	// failing the run.
	var probeCache collectors.Cache
	if store, err := cache.NewStore(cfg.General.CacheDir, logger); err != nil {
		logger.Warn("cache unavailable, probes run uncached", "error", err)
	} else {
		probeCache = store
	}

	// ---------------------------------------------------------------
	// Collector registry per configured sections
	// ---------------------------------------------------------------

	reg := buildRegistry(cfg, probeCache, logger)

	if *listCollectors {
		for _, c := range reg.All() {
			fmt.Printf("%-12s %-6s %s\n", c.Name(), c.Interval(), c.Description())
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Banner assembly from config
	// ---------------------------------------------------------------

	// The flag wins, then NO_COLOR and pipe detection. ForceDisable
	// keeps stray lipgloss styling inert alongside the nil palette.
	var palette *color.Palette
	if !*noColor && !color.ShouldDisableColor() {
		palette, err = color.NewPalette(cfg.Colors.Spec())
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid colors: %v\n", err)
			os.Exit(1)
		}
	} else {
		color.ForceDisable()
	}

	bcfg, err := bannerConfig(cfg, palette, probeCache, logger, *termWidth, *termHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	b := banner.New(bcfg)

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// ---------------------------------------------------------------
	// Live mode
	// ---------------------------------------------------------------

	if *runLive {
		defer func() {
			if r := recover(); r != nil {
				// Attempt to restore terminal from alt-screen before printing error.
				fmt.Print("\x1b[?1049l\x1b[?25h")
				fmt.Fprintf(os.Stderr, "slowfetch: live view panic: %v\n", r)
				os.Exit(1)
			}
		}()

		zone.NewGlobal()

		// Every collector re-runs at the configured refresh interval.
		liveReg := liveRegistry(reg, cfg.RefreshInterval())

		model := tui.New(b, liveReg, logger)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

		updatesCh := make(chan collectors.Update, collectors.DefaultUpdateBufferSize)
		runner := collectors.NewRunner(liveReg, updatesCh, logger)

		if err := runner.Start(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "collector runner error: %v\n", err)
			os.Exit(1)
		}

		// Bridge goroutine: convert collector updates into Bubbletea messages.
		go func() {
			for update := range updatesCh {
				p.Send(tui.UpdateMsg(update))
			}
		}()

		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "live view error: %v\n", err)
			runner.Stop()
			os.Exit(1)
		}

		runner.Stop()
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// One-shot mode (default): collect once, print, exit
	// ---------------------------------------------------------------

	results := collectors.Gather(ctx, reg, logger, 0)
	out, err := b.Render(ctx, results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
