//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package useragent

import (
	"sync"

	"golang.org/x/sys/unix"
)

// Platform describes the host, e.g. `Go/1.24.0 (Linux 6.8.0; x86_64)`.
var Platform = sync.OnceValue(func() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return fallbackPlatform()
	}
	return "Go/" + goVersion() + " (" + unix.ByteSliceToString(u.Sysname[:]) + " " +
		unix.ByteSliceToString(u.Release[:]) + "; " + unix.ByteSliceToString(u.Machine[:]) + ")"
})
