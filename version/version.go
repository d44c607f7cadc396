// Package version tells which build of the tools is running.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/tuningplayground/tuning/version.Version=$(git describe --dirty)"
var Version string

// Revision is the abbreviated VCS revision the binary was built from, with
// a "-dirty" suffix for modified work trees. It is empty when the build
// carries no VCS information.
var Revision = revision(debug.ReadBuildInfo())

// String returns Version if it was set at build time and Revision
// otherwise.
func String() string {
	if Version != "" {
		return Version
	}
	if Revision != "" {
		return Revision
	}
	return "unknown"
}

func revision(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}
	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}
