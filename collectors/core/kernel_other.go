//go:build !linux && !darwin

package core

// kernelRelease returns "" on platforms without uname, which drops the
// kernel row from the banner.
func kernelRelease() string {
	return ""
}

// machineArch returns "" on platforms without uname.
func machineArch() string {
	return ""
}
