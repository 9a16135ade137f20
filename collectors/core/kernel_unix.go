//go:build linux || darwin

package core

import "golang.org/x/sys/unix"

// kernelRelease returns the uname release string, e.g. "6.8.9-arch1-1".
func kernelRelease() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return nulTrim(u.Release[:])
}

// machineArch returns the uname machine string, e.g. "x86_64".
func machineArch() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return nulTrim(u.Machine[:])
}

// nulTrim converts a fixed-size utsname field to a string, stopping at
// the first NUL.
func nulTrim(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
