//go:build !linux && !darwin

package core

import "time"

// systemUptime returns 0 on unsupported platforms, which drops the
// uptime row from the banner.
func systemUptime() time.Duration {
	return 0
}
