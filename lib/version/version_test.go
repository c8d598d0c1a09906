// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func withBuild(t *testing.T, version, commit, dirty, buildTime string) {
	t.Helper()
	saved := []string{Version, GitCommit, GitDirty, BuildTime}
	Version, GitCommit, GitDirty, BuildTime = version, commit, dirty, buildTime
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name  string
		dirty string
		want  string
	}{
		{"clean", "false", "1.2.0 (abc1234, 2026-10-01T00:00:00Z)"},
		{"dirty", "true", "1.2.0 (abc1234-dirty, 2026-10-01T00:00:00Z)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			withBuild(t, "1.2.0", "abc1234", test.dirty, "2026-10-01T00:00:00Z")
			if got := Info(); got != test.want {
				t.Errorf("Info() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() = %q does not start with Info()", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q does not mention %s", full, runtime.Version())
	}
}

func TestCurrent(t *testing.T) {
	withBuild(t, "2.0.0", "def5678", "true", "now")
	build := Current()
	if build.Version != "2.0.0" || build.Commit != "def5678" || !build.Dirty || build.BuildTime != "now" {
		t.Errorf("Current() = %+v", build)
	}
	if build.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", build.Platform)
	}
	if Short() != "2.0.0" {
		t.Errorf("Short() = %q", Short())
	}
}
