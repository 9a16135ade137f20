// Package core collects the identity section of the banner: OS name,
// kernel release, and uptime.
package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/internal/format"
)

const (
	// collectorName is the unique identifier for this collector.
	collectorName = "core"

	// collectorTitle is the banner section heading.
	collectorTitle = "Core"

	// collectorDescription describes what this collector gathers.
	collectorDescription = "OS identity, kernel release, uptime"

	// defaultInterval keeps the uptime row ticking in live mode. The
	// other readings only change across reboots.
	defaultInterval = 1 * time.Minute
)

// Collector implements collectors.Collector for the core section.
type Collector struct {
	logger *slog.Logger

	// Overridable probes for testing.
	openOSRelease func() (io.ReadCloser, error)
	uptimeFunc    func() time.Duration
	releaseFunc   func() string
	archFunc      func() string
}

// New creates a core collector. If logger is nil, a no-op logger is
// used.
func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Collector{
		logger: logger,
		openOSRelease: func() (io.ReadCloser, error) {
			return os.Open("/etc/os-release")
		},
		uptimeFunc:  systemUptime,
		releaseFunc: kernelRelease,
		archFunc:    machineArch,
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

// Collect gathers the OS, Kernel, and Uptime fields. Readings that
// cannot be taken are omitted rather than rendered blank.
func (c *Collector) Collect(ctx context.Context) (*collectors.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var fields []collectors.Field
	var warnings []string

	osName, warn := c.readOSName()
	if warn != "" {
		warnings = append(warnings, warn)
	}
	if osName != "" {
		if arch := c.archFunc(); arch != "" {
			osName += " " + arch
		}
		fields = append(fields, collectors.NewField("OS", osName))
	}

	if rel := c.releaseFunc(); rel != "" {
		fields = append(fields, collectors.NewField("Kernel", rel))
	}

	if up := c.uptimeFunc(); up > 0 {
		fields = append(fields, collectors.NewField("Uptime", format.Duration(up)))
	}

	c.logger.Debug("core collected", slog.Int("fields", len(fields)))

	return &collectors.Result{
		Collector: collectorName,
		Title:     collectorTitle,
		Timestamp: time.Now(),
		Fields:    fields,
		Warnings:  warnings,
	}, nil
}

// readOSName resolves the display name for the OS row: os-release
// PRETTY_NAME, falling back to NAME, falling back to GOOS.
func (c *Collector) readOSName() (string, string) {
	f, err := c.openOSRelease()
	if err != nil {
		// Not present on darwin and friends.
		return runtime.GOOS, ""
	}
	defer f.Close()

	pretty, name, err := parseOSRelease(f)
	if err != nil {
		return runtime.GOOS, fmt.Sprintf("core: parse os-release: %v", err)
	}
	if pretty != "" {
		return pretty, ""
	}
	if name != "" {
		return name, ""
	}
	return runtime.GOOS, ""
}

// parseOSRelease extracts PRETTY_NAME and NAME from os-release format
// (KEY=value lines, values optionally double-quoted).
func parseOSRelease(r io.Reader) (pretty, name string, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if v, ok := strings.CutPrefix(line, "PRETTY_NAME="); ok {
			pretty = unquote(v)
		} else if v, ok := strings.CutPrefix(line, "NAME="); ok {
			name = unquote(v)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	return pretty, name, nil
}

func unquote(s string) string {
	return strings.Trim(s, `"`)
}

// Compile-time interface compliance check.
var _ collectors.Collector = (*Collector)(nil)
