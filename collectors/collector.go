// Package collectors provides the probe interface and registration for
// slowfetch's system information gathering. Each collector owns one
// banner section (core identity, hardware, userspace) and fills it with
// key/value fields. Probes read local sources only: procfs, sysctl,
// environment variables, and the occasional subprocess.
package collectors

import (
	"context"
	"time"
)

// Field is one "key: value" row inside a banner section.
type Field struct {
	// Key is the display label, e.g. "OS" or "Memory".
	Key string

	// Value is the formatted reading. Empty values are dropped from the
	// banner rather than rendered blank.
	Value string

	// Percent drives a usage bar beside the value when it is 0-100.
	// Negative means no bar.
	Percent int
}

// NewField returns a plain field with no usage bar.
func NewField(key, value string) Field {
	return Field{Key: key, Value: value, Percent: -1}
}

// Result holds the output of a collection run.
type Result struct {
	// Collector is the name of the collector that produced this result.
	Collector string

	// Title is the banner section heading, e.g. "Core" or "Hardware".
	Title string

	// Timestamp records when the collection completed.
	Timestamp time.Time

	// Fields are the section rows in display order.
	Fields []Field

	// Warnings contains non-fatal issues encountered during collection,
	// for example one GPU enumeration source failing while another
	// succeeds.
	Warnings []string
}

// Collector is the interface that all probes implement. A collector
// gathers the readings for a single banner section.
type Collector interface {
	// Name returns the collector's unique identifier (e.g. "core",
	// "hardware", "userspace"). Names must be unique within a Registry
	// and double as section titles after capitalization.
	Name() string

	// Description returns a human-readable summary of what this
	// collector gathers.
	Description() string

	// Interval returns the refresh interval used by live mode. Static
	// readings (OS identity, shell) should return long intervals;
	// volatile ones (memory, uptime) short.
	Interval() time.Duration

	// Collect gathers the section fields. Probes degrade per field:
	// a reading that cannot be taken is omitted from Fields rather
	// than failing the run. An error return means the whole section
	// is unavailable.
	Collect(ctx context.Context) (*Result, error)
}

// Cache is the subset of the cache store that collectors use to avoid
// repeating slow probes. Implementations must be safe for concurrent
// use.
type Cache interface {
	Get(key string, ttl time.Duration) (value string, fresh bool, err error)
	Set(key, value string) error
}

// WithInterval wraps a collector with a fixed refresh interval,
// overriding its own. Live mode uses it to apply the configured
// refresh rate uniformly.
func WithInterval(c Collector, d time.Duration) Collector {
	return &intervalOverride{Collector: c, interval: d}
}

type intervalOverride struct {
	Collector
	interval time.Duration
}

func (o *intervalOverride) Interval() time.Duration {
	return o.interval
}

// Registry holds registered collectors and provides lookup by name.
type Registry struct {
	collectors []Collector
}

// NewRegistry creates a new empty collector registry.
func NewRegistry() *Registry {
	return &Registry{
		collectors: make([]Collector, 0),
	}
}

// Register adds a collector to the registry. Registration order is
// banner order. If a collector with the same name already exists, it is
// replaced in place.
func (r *Registry) Register(c Collector) {
	for i, existing := range r.collectors {
		if existing.Name() == c.Name() {
			r.collectors[i] = c
			return
		}
	}
	r.collectors = append(r.collectors, c)
}

// Get returns a collector by name. The second return value indicates
// whether the collector was found.
func (r *Registry) Get(name string) (Collector, bool) {
	for _, c := range r.collectors {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// All returns all registered collectors in registration order.
func (r *Registry) All() []Collector {
	result := make([]Collector, len(r.collectors))
	copy(result, r.collectors)
	return result
}
