package format

import "fmt"

const (
	kib = 1 << 10
	mib = 1 << 20
	gib = 1 << 30
	tib = 1 << 40
)

// Bytes renders a byte count with one decimal in the largest binary unit
// that keeps the value at or above one. Returns strings like "15.5 GiB",
// "512.0 MiB", or "2.0 TiB".
func Bytes(n uint64) string {
	switch {
	case n >= tib:
		return fmt.Sprintf("%.1f TiB", float64(n)/float64(tib))
	case n >= gib:
		return fmt.Sprintf("%.1f GiB", float64(n)/float64(gib))
	case n >= mib:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(mib))
	case n >= kib:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(kib))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Percent computes used/total as an integer percentage, clamped to 0-100.
// A zero total yields 0 rather than dividing by zero.
func Percent(used, total uint64) int {
	if total == 0 {
		return 0
	}
	p := int(used * 100 / total)
	if p > 100 {
		p = 100
	}
	return p
}
