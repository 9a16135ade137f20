package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/cache"
	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/config"
	"gitlab.com/tinyland/lab/slowfetch/display/banner"
	"gitlab.com/tinyland/lab/slowfetch/display/color"
)

// integrationCollector returns canned fields so pipeline tests don't
// depend on the host the tests run on.
type integrationCollector struct {
	collectorName string
	title         string
	fields        []collectors.Field
	collectorErr  error
}

func (ic *integrationCollector) Name() string             { return ic.collectorName }
func (ic *integrationCollector) Description() string      { return "integration test " + ic.collectorName }
func (ic *integrationCollector) Interval() time.Duration  { return time.Minute }
func (ic *integrationCollector) Collect(ctx context.Context) (*collectors.Result, error) {
	if ic.collectorErr != nil {
		return nil, ic.collectorErr
	}
	return &collectors.Result{
		Collector: ic.collectorName,
		Title:     ic.title,
		Timestamp: time.Now(),
		Fields:    ic.fields,
	}, nil
}

// ---------------------------------------------------------------------------
// Realistic mock data helpers
// ---------------------------------------------------------------------------

func testCoreCollector() *integrationCollector {
	return &integrationCollector{
		collectorName: "core",
		title:         "Core",
		fields: []collectors.Field{
			collectors.NewField("OS", "Arch Linux x86_64"),
			collectors.NewField("Kernel", "6.18.2-arch1-1"),
			collectors.NewField("Uptime", "3d 4h"),
		},
	}
}

func testHardwareCollector() *integrationCollector {
	return &integrationCollector{
		collectorName: "hardware",
		title:         "Hardware",
		fields: []collectors.Field{
			collectors.NewField("CPU", "AMD Ryzen 7 7840U (16) @ 5.13 GHz"),
			{Key: "Memory", Value: "11.9 GiB / 30.6 GiB (39%)", Percent: 39},
			{Key: "Storage", Value: "182.4 GiB / 476.3 GiB (38%)", Percent: 38},
		},
	}
}

func testUserspaceCollector() *integrationCollector {
	return &integrationCollector{
		collectorName: "userspace",
		title:         "Userspace",
		fields: []collectors.Field{
			collectors.NewField("Packages", "1432 (pacman)"),
			collectors.NewField("Terminal", "foot"),
			collectors.NewField("Shell", "zsh 5.9"),
			collectors.NewField("WM", "Hyprland"),
		},
	}
}

// testRegistry returns a registry with stubbed core, hardware and
// userspace collectors.
func testRegistry() *collectors.Registry {
	reg := collectors.NewRegistry()
	reg.Register(testCoreCollector())
	reg.Register(testHardwareCollector())
	reg.Register(testUserspaceCollector())
	return reg
}

// testLogger returns a quiet logger for test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// writeMinimalConfig writes a minimal valid config.yaml to dir and returns its path.
func writeMinimalConfig(t *testing.T, dir string) string {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`general:
  cache_dir: %q
art:
  os: arch
fonts:
  nerd: never
`, filepath.Join(dir, "cache"))
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return cfgPath
}

// ---------------------------------------------------------------------------
// Integration tests
// ---------------------------------------------------------------------------

// TestIntegration_FullPipeline tests the complete one-shot pipeline:
// config -> cache -> registry -> gather -> banner render.
func TestIntegration_FullPipeline(t *testing.T) {
	tmpDir := t.TempDir()
	logger := testLogger()

	// Step 1: write a minimal config and load it.
	cfgPath := writeMinimalConfig(t, tmpDir)
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	// Step 2: create the cache store in the configured directory.
	store, err := cache.NewStore(cfg.General.CacheDir, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Step 3: build the palette and banner the way main does.
	palette, err := color.NewPalette(cfg.Colors.Spec())
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	bcfg, err := bannerConfig(cfg, palette, store, logger, 100, 30)
	if err != nil {
		t.Fatalf("bannerConfig: %v", err)
	}
	b := banner.New(bcfg)

	// Step 4: gather from stub collectors and render.
	results := collectors.Gather(context.Background(), testRegistry(), logger, 0)
	out, err := b.Render(context.Background(), results)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{"Core", "Hardware", "Userspace", "OS", "Arch Linux", "1432 (pacman)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// fonts.nerd=never forces the ASCII bar charset.
	if !strings.Contains(out, "[") {
		t.Error("output missing ASCII usage bar")
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("output does not end with a newline")
	}
}

// TestIntegration_CollectorFailureDegrades verifies that one failing
// collector drops its section without taking down the run.
func TestIntegration_CollectorFailureDegrades(t *testing.T) {
	logger := testLogger()

	reg := collectors.NewRegistry()
	reg.Register(testCoreCollector())
	reg.Register(&integrationCollector{
		collectorName: "hardware",
		title:         "Hardware",
		collectorErr:  errors.New("sysinfo unavailable"),
	})
	reg.Register(testUserspaceCollector())

	results := collectors.Gather(context.Background(), reg, logger, 0)
	if len(results) != 3 {
		t.Fatalf("expected 3 result slots, got %d", len(results))
	}
	if results[1] != nil {
		t.Error("failed collector should leave a nil result")
	}

	cfg := config.DefaultConfig()
	cfg.Art.OS = "arch"
	cfg.Fonts.Nerd = "never"
	bcfg, err := bannerConfig(cfg, nil, nil, logger, 100, 30)
	if err != nil {
		t.Fatalf("bannerConfig: %v", err)
	}
	out, err := banner.New(bcfg).Render(context.Background(), results)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "Hardware") {
		t.Error("failed section should be absent from the banner")
	}
	for _, want := range []string{"Core", "Userspace"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing surviving section %q", want)
		}
	}
}

// TestIntegration_FontVerdictFromCache verifies that a cached font
// verdict drives the bar charset without re-probing.
func TestIntegration_FontVerdictFromCache(t *testing.T) {
	tmpDir := t.TempDir()
	logger := testLogger()

	store, err := cache.NewStore(tmpDir, logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Set("font", "JetBrainsMono Nerd Font"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Art.OS = "arch"
	cfg.Fonts.Nerd = "auto"
	bcfg, err := bannerConfig(cfg, nil, store, logger, 100, 30)
	if err != nil {
		t.Fatalf("bannerConfig: %v", err)
	}

	results := collectors.Gather(context.Background(), testRegistry(), logger, 0)
	out, err := banner.New(bcfg).Render(context.Background(), results)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "█") && !strings.Contains(out, "░") {
		t.Error("cached patched-font verdict should select the block bar charset")
	}
}

// TestIntegration_CacheRoundTrip exercises the store the way the
// probes use it: write, fresh read, stale read after the TTL passes.
func TestIntegration_CacheRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := cache.NewStore(tmpDir, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Set("packages", "1432 (pacman)"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, fresh, err := store.Get("packages", time.Hour)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !fresh {
		t.Error("just-written entry should be fresh")
	}
	if value != "1432 (pacman)" {
		t.Errorf("value = %q, want %q", value, "1432 (pacman)")
	}

	// Age the entry past the TTL. Stale entries keep their value so
	// callers can show old data while refreshing.
	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(filepath.Join(tmpDir, "packages.txt"), past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	value, fresh, err = store.Get("packages", time.Hour)
	if err != nil {
		t.Fatalf("Get after aging: %v", err)
	}
	if fresh {
		t.Error("aged entry should be stale")
	}
	if value != "1432 (pacman)" {
		t.Errorf("stale value = %q, want %q", value, "1432 (pacman)")
	}
}

// TestIntegration_EmptyCache verifies the pipeline renders with a
// brand-new cache directory and nothing in it.
func TestIntegration_EmptyCache(t *testing.T) {
	tmpDir := t.TempDir()
	logger := testLogger()

	store, err := cache.NewStore(filepath.Join(tmpDir, "cache"), logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if keys := store.Keys(); len(keys) != 0 {
		t.Fatalf("new store should be empty, has %v", keys)
	}

	cfg := config.DefaultConfig()
	cfg.Art.OS = "arch"
	cfg.Fonts.Nerd = "never"
	bcfg, err := bannerConfig(cfg, nil, store, logger, 100, 30)
	if err != nil {
		t.Fatalf("bannerConfig: %v", err)
	}

	results := collectors.Gather(context.Background(), testRegistry(), logger, 0)
	out, err := banner.New(bcfg).Render(context.Background(), results)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == "" {
		t.Error("render with empty cache returned no output")
	}
}

// TestIntegration_ConfigDefaultsWork verifies the zero-config path:
// defaults validate, build a palette and assemble the full registry.
func TestIntegration_ConfigDefaultsWork(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config does not validate: %v", err)
	}
	if _, err := color.NewPalette(cfg.Colors.Spec()); err != nil {
		t.Fatalf("default palette does not build: %v", err)
	}

	reg := buildRegistry(cfg, nil, testLogger())
	if len(reg.All()) != 3 {
		t.Errorf("default config should register 3 collectors, got %d", len(reg.All()))
	}
}

// TestIntegration_LiveRegistryGather verifies gathering through the
// interval-wrapped registry live mode uses.
func TestIntegration_LiveRegistryGather(t *testing.T) {
	logger := testLogger()
	live := liveRegistry(testRegistry(), 2*time.Second)

	results := collectors.Gather(context.Background(), live, logger, 0)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
		if len(res.Fields) == 0 {
			t.Errorf("result %q has no fields", res.Collector)
		}
	}
}
