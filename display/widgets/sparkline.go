package widgets

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// sparkRunes are the eight block elements, lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// SparklineConfig controls the appearance of a history sparkline.
type SparklineConfig struct {
	// Data is the sample series, oldest first.
	Data []float64
	// Width caps the cell count. Zero renders every sample; otherwise
	// only the newest Width samples are kept.
	Width int
	// Min and Max fix the scale. Leave both zero to scale to the data.
	Min float64
	Max float64
	// Fill styles the rendered run. The zero value leaves it unstyled.
	Fill lipgloss.Style
}

// RenderSparkline renders a block-element sparkline, e.g. "▁▂▄▇█".
// Samples outside the scale are clamped. A flat series renders at the
// middle level so it stays visible.
func RenderSparkline(cfg SparklineConfig) string {
	if len(cfg.Data) == 0 {
		return ""
	}

	data := cfg.Data
	if cfg.Width > 0 && len(data) > cfg.Width {
		data = data[len(data)-cfg.Width:]
	}

	lo, hi := cfg.Min, cfg.Max
	if lo == hi {
		lo, hi = data[0], data[0]
		for _, v := range data {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	runes := make([]rune, len(data))
	for i, v := range data {
		if lo == hi {
			runes[i] = sparkRunes[len(sparkRunes)/2]
			continue
		}
		n := (v - lo) / (hi - lo)
		n = math.Max(0, math.Min(1, n))
		runes[i] = sparkRunes[int(n*float64(len(sparkRunes)-1))]
	}

	return cfg.Fill.Render(string(runes))
}
