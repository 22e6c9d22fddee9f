// Package buildinfo reports the binary version.
package buildinfo

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// Devel is reported for builds without version information.
const Devel = "(devel)"

// version is set via -ldflags at build time, e.g.
// -X github.com/abhisek/iqfieldbot/internal/buildinfo.version=v1.2.0
var version = ""

// Version returns the canonical semantic version of the binary, or Devel.
func Version() string {
	return resolve(version, readModuleVersion)
}

func readModuleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Version
}

func resolve(ldflags string, module func() string) string {
	for _, v := range []string{ldflags, module()} {
		if v == "" || v == Devel {
			continue
		}
		if v[0] != 'v' {
			v = "v" + v
		}
		if semver.IsValid(v) {
			return semver.Canonical(v)
		}
	}
	return Devel
}

// IsRelease reports whether v is a tagged release, i.e. a valid semantic
// version without prerelease or pseudo-version suffix.
func IsRelease(v string) bool {
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}
