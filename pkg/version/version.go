// Package version reports the build identity of the symptomline binary.
package version

import (
	"runtime/debug"
	"sync"
)

const unknown = "unknown"

// Set at link time with -ldflags "-X github.com/Sumatoshi-tech/symptomline/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

var initOnce sync.Once

// InitBinaryVersion fills Version, Commit and Date from the embedded build
// info when they were not set at link time.
func InitBinaryVersion() {
	initOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		apply(info)
	})
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown {
				Commit = setting.Value
			}
		case "vcs.time":
			if Date == unknown {
				Date = setting.Value
			}
		}
	}
}

// String formats the build identity as "VERSION (commit: C, built: D)".
func String() string {
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
