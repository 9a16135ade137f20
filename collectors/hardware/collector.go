// Package hardware collects the hardware section of the banner: CPU
// model, GPU, memory usage, and root filesystem usage.
package hardware

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/slowfetch/collectors"
	"gitlab.com/tinyland/lab/slowfetch/internal/format"
)

const (
	// collectorName is the unique identifier for this collector.
	collectorName = "hardware"

	// collectorTitle is the banner section heading.
	collectorTitle = "Hardware"

	// collectorDescription describes what this collector gathers.
	collectorDescription = "CPU model, GPU, memory and storage usage"

	// defaultInterval keeps the memory and storage bars moving in live
	// mode.
	defaultInterval = 2 * time.Second

	// gpuCacheKey and gpuCacheTTL cover the lspci probe. PCI topology
	// only changes across reboots, so a day is conservative.
	gpuCacheKey = "gpu"
	gpuCacheTTL = 24 * time.Hour
)

// Collector implements collectors.Collector for the hardware section.
type Collector struct {
	logger *slog.Logger
	cache  collectors.Cache

	// Overridable probes for testing.
	openCPUInfo func() (io.ReadCloser, error)
	openMeminfo func() (io.ReadCloser, error)
	diskFunc    func(path string) (used, total uint64, ok bool)
	lookPath    func(file string) (string, error)
	execCommand func(ctx context.Context, name string, args ...string) ([]byte, error)
	numCPU      func() int
}

// New creates a hardware collector. The cache may be nil, in which case
// the GPU probe runs uncached. If logger is nil, a no-op logger is
// used.
func New(cache collectors.Cache, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Collector{
		logger: logger,
		cache:  cache,
		openCPUInfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/cpuinfo")
		},
		openMeminfo: func() (io.ReadCloser, error) {
			return os.Open("/proc/meminfo")
		},
		diskFunc: diskUsage,
		lookPath: exec.LookPath,
		execCommand: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
		numCPU: runtime.NumCPU,
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

// Collect gathers the CPU, GPU, Memory, and Storage fields. Readings
// that cannot be taken are omitted rather than rendered blank.
func (c *Collector) Collect(ctx context.Context) (*collectors.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var fields []collectors.Field
	var warnings []string

	cpu, warn := c.readCPU(ctx)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	if cpu != "" {
		fields = append(fields, collectors.NewField("CPU", cpu))
	}

	gpus, warn := c.readGPU(ctx)
	if warn != "" {
		warnings = append(warnings, warn)
	}
	for _, gpu := range gpus {
		fields = append(fields, collectors.NewField("GPU", gpu))
	}

	if mem, pct, warn := c.readMemory(); warn != "" {
		warnings = append(warnings, warn)
	} else {
		fields = append(fields, collectors.Field{Key: "Memory", Value: mem, Percent: pct})
	}

	if used, total, ok := c.diskFunc("/"); ok && total > 0 {
		fields = append(fields, collectors.Field{
			Key:     "Storage",
			Value:   usageString(used, total),
			Percent: format.Percent(used, total),
		})
	}

	c.logger.Debug("hardware collected", slog.Int("fields", len(fields)))

	return &collectors.Result{
		Collector: collectorName,
		Title:     collectorTitle,
		Timestamp: time.Now(),
		Fields:    fields,
		Warnings:  warnings,
	}, nil
}

// readCPU resolves the CPU model name with its logical core count,
// e.g. "AMD Ryzen 7 5800X (16)". Linux reads /proc/cpuinfo; darwin
// falls back to sysctl.
func (c *Collector) readCPU(ctx context.Context) (string, string) {
	model := ""

	f, err := c.openCPUInfo()
	if err == nil {
		model = parseCPUModel(f)
		f.Close()
	}

	if model == "" && runtime.GOOS == "darwin" {
		out, err := c.execCommand(ctx, "sysctl", "-n", "machdep.cpu.brand_string")
		if err == nil {
			model = strings.TrimSpace(string(out))
		}
	}

	if model == "" {
		return "", "hardware: cpu model unavailable"
	}
	if n := c.numCPU(); n > 0 {
		model = fmt.Sprintf("%s (%d)", model, n)
	}
	return model, ""
}

// parseCPUModel extracts the first "model name" value from
// /proc/cpuinfo.
func parseCPUModel(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "model name") {
			continue
		}
		if _, value, ok := strings.Cut(line, ":"); ok {
			return collapseSpaces(strings.TrimSpace(value))
		}
	}
	return ""
}

// collapseSpaces squeezes repeated spaces. Some cpuinfo model strings
// pad with them.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// readGPU resolves the GPU rows, one per controller. The lspci probe
// is slow relative to everything else this program does, so fresh
// cache hits short-circuit it.
func (c *Collector) readGPU(ctx context.Context) ([]string, string) {
	if c.cache != nil {
		if v, fresh, err := c.cache.Get(gpuCacheKey, gpuCacheTTL); err == nil && fresh && v != "" {
			return strings.Split(v, "\n"), ""
		}
	}

	gpus, warn := c.probeGPU(ctx)
	if len(gpus) > 0 && c.cache != nil {
		if err := c.cache.Set(gpuCacheKey, strings.Join(gpus, "\n")); err != nil {
			c.logger.Debug("gpu cache write failed", slog.String("error", err.Error()))
		}
	}
	return gpus, warn
}

func (c *Collector) probeGPU(ctx context.Context) ([]string, string) {
	if _, err := c.lookPath("lspci"); err != nil {
		return nil, ""
	}

	out, err := c.execCommand(ctx, "lspci", "-mm")
	if err != nil {
		return nil, fmt.Sprintf("hardware: lspci: %v", err)
	}

	return parseLspci(string(out)), ""
}

// parseLspci extracts display controller names from `lspci -mm`
// output. Each line holds quoted fields: slot, class, vendor, device,
// and optional extras.
func parseLspci(out string) []string {
	var gpus []string
	for _, line := range strings.Split(out, "\n") {
		fields := splitQuoted(line)
		if len(fields) < 4 {
			continue
		}
		class := fields[1]
		if !strings.Contains(class, "VGA") && !strings.Contains(class, "3D") &&
			!strings.Contains(class, "Display") {
			continue
		}
		name := gpuName(fields[2], fields[3])
		if name != "" {
			gpus = append(gpus, name)
		}
	}
	return gpus
}

// splitQuoted returns the double-quoted fields of an lspci -mm line.
func splitQuoted(line string) []string {
	var fields []string
	for {
		start := strings.IndexByte(line, '"')
		if start < 0 {
			return fields
		}
		line = line[start+1:]
		end := strings.IndexByte(line, '"')
		if end < 0 {
			return fields
		}
		fields = append(fields, line[:end])
		line = line[end+1:]
	}
}

// gpuName combines a PCI vendor and device string into a display name.
// Device strings often wrap the marketing name in brackets, e.g.
// "GA106 [GeForce RTX 3060]".
func gpuName(vendor, device string) string {
	if start := strings.IndexByte(device, '['); start >= 0 {
		if end := strings.IndexByte(device[start:], ']'); end > 0 {
			device = device[start+1 : start+end]
		}
	}
	vendor = shortVendor(vendor)
	if vendor == "" {
		return device
	}
	if strings.HasPrefix(device, vendor) {
		return device
	}
	return vendor + " " + device
}

func shortVendor(vendor string) string {
	switch {
	case strings.Contains(vendor, "NVIDIA"):
		return "NVIDIA"
	case strings.Contains(vendor, "Advanced Micro Devices"), strings.Contains(vendor, "AMD"):
		return "AMD"
	case strings.Contains(vendor, "Intel"):
		return "Intel"
	}
	return strings.TrimSuffix(strings.TrimSpace(vendor), " Corporation")
}

// readMemory computes the memory row from /proc/meminfo:
// used = MemTotal - MemAvailable.
func (c *Collector) readMemory() (string, int, string) {
	f, err := c.openMeminfo()
	if err != nil {
		return "", -1, fmt.Sprintf("hardware: open meminfo: %v", err)
	}
	defer f.Close()

	var memTotal, memAvailable uint64
	var foundTotal, foundAvailable bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "MemTotal:") {
			val, err := parseMemInfoLine(line)
			if err != nil {
				return "", -1, fmt.Sprintf("hardware: parse MemTotal: %v", err)
			}
			memTotal = val
			foundTotal = true
		} else if strings.HasPrefix(line, "MemAvailable:") {
			val, err := parseMemInfoLine(line)
			if err != nil {
				return "", -1, fmt.Sprintf("hardware: parse MemAvailable: %v", err)
			}
			memAvailable = val
			foundAvailable = true
		}

		if foundTotal && foundAvailable {
			break
		}
	}

	if !foundTotal || !foundAvailable || memTotal == 0 || memAvailable > memTotal {
		return "", -1, "hardware: meminfo incomplete"
	}

	usedBytes := (memTotal - memAvailable) * 1024
	totalBytes := memTotal * 1024
	return usageString(usedBytes, totalBytes), format.Percent(usedBytes, totalBytes), ""
}

// parseMemInfoLine extracts the numeric kB value from a /proc/meminfo
// line. Format: "MemTotal:       16384000 kB"
func parseMemInfoLine(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("too few fields: %q", line)
	}
	return strconv.ParseUint(fields[1], 10, 64)
}

// usageString renders "used / total (NN%)" for memory and storage rows.
func usageString(used, total uint64) string {
	return fmt.Sprintf("%s / %s (%d%%)", format.Bytes(used), format.Bytes(total), format.Percent(used, total))
}

// Compile-time interface compliance check.
var _ collectors.Collector = (*Collector)(nil)
