package config

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X paperboy/internal/config.version=1.2.3" and likewise
// for commit and buildTime. Unset values fall back to the VCS stamp the Go
// toolchain embeds, then to the defaults below.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// NewBuildInfo returns the build metadata for Config.Build.
func NewBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == "unknown" && s.Value != "" {
				info.BuildTime = s.Value
			}
		}
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	return info
}

// String formats the metadata for startup logs, e.g. "1.2.3 (abc1234, 2026-01-02T03:04:05Z)".
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", b.Version, b.Commit, b.BuildTime)
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
