// package useragent builds the User-Agent the client identifies itself with.
package useragent

import (
	"runtime"
	"strings"
)

// Version of the client, set at build time with
//
//	-ldflags "-X github.com/haukgo/hauk-http/internal/useragent.Version=1.6.2"
var Version = "dev"

// String returns `Hauk/<version> <platform>`.
func String(version string) string {
	if version == "" {
		version = Version
	}
	return "Hauk/" + version + " " + Platform()
}

func goVersion() string {
	return strings.TrimPrefix(runtime.Version(), "go")
}

func fallbackPlatform() string {
	return "Go/" + goVersion() + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")"
}
