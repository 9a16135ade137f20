//go:build linux || darwin

package hardware

import "golang.org/x/sys/unix"

// diskUsage reports used and total bytes for the filesystem at path.
// Totals follow df semantics: blocks reserved for root are counted as
// used.
func diskUsage(path string) (used, total uint64, ok bool) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, false
	}
	if stat.Blocks == 0 {
		return 0, 0, false
	}

	bsize := uint64(stat.Bsize)
	used = (stat.Blocks - stat.Bfree) * bsize
	total = (stat.Blocks - stat.Bfree + stat.Bavail) * bsize
	return used, total, total > 0
}
