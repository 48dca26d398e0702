package config

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestNewBuildInfo_Defaults(t *testing.T) {
	stubBuildInfo(t, nil)

	info := NewBuildInfo()
	assert.Equal(t, BuildInfo{Version: "dev", Commit: "none", BuildTime: "unknown"}, info)
}

func TestNewBuildInfo_VCSFallback(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	info := NewBuildInfo()
	assert.Equal(t, "v0.4.0", info.Version)
	assert.Equal(t, "0123456", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
}

func TestNewBuildInfo_LdflagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	})

	origCommit := commit
	commit = "abc1234"
	t.Cleanup(func() { commit = origCommit })

	info := NewBuildInfo()
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "abc1234", info.Commit)
}

func TestBuildInfoString(t *testing.T) {
	b := BuildInfo{Version: "1.2.3", Commit: "abc1234", BuildTime: "2026-01-02T03:04:05Z"}
	assert.Equal(t, "1.2.3 (abc1234, 2026-01-02T03:04:05Z)", b.String())
}
