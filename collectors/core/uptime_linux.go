//go:build linux

package core

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// systemUptime returns the system uptime from the sysinfo syscall,
// falling back to /proc/uptime when it fails.
func systemUptime() time.Duration {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err == nil && si.Uptime > 0 {
		return time.Duration(si.Uptime) * time.Second
	}

	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
