package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get returns build information, filling the commit from VCS build
// settings when it was not set via -ldflags.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// String returns "version (commit[, dirty]) goX.Y".
func (i Info) String() string {
	s := i.Version
	if i.GitCommit != "" {
		s += " (" + i.GitCommit
		if i.Dirty {
			s += ", dirty"
		}
		s += ")"
	}
	return s + " " + i.GoVersion
}

// UserAgent returns the default User-Agent header value.
func UserAgent() string {
	return fmt.Sprintf("restkit/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
