// Package version reports the scaffold build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables injected via -ldflags. Empty values fall back to
// the module build info recorded by go install.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// devVersion is reported when neither ldflags nor build info name a version.
const devVersion = "dev"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the current version string.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return devVersion
}

// GetCommit returns the build commit hash, shortened to 12 characters.
func GetCommit() string {
	c := Commit
	if c == "" {
		c = buildSetting("vcs.revision")
	}
	if len(c) > 12 {
		c = c[:12]
	}
	if c == "" {
		return "none"
	}
	return c
}

// GetDate returns the build date.
func GetDate() string {
	if Date != "" {
		return Date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s)", GetVersion(), GetCommit(), GetDate(), runtime.Version())
}

func buildSetting(key string) string {
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
