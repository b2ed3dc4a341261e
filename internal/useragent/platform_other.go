//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package useragent

// Platform describes the host, e.g. `Go/1.24.0 (windows; amd64)`.
func Platform() string {
	return fallbackPlatform()
}
