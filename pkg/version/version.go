package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set by build flags; when they are absent, Get falls back to the module's
// embedded VCS metadata.
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

// BuildInfo contains detailed version information
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

// Get returns the current build information
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if info.GitCommit == "" || info.BuildDate == "" {
		revision, modified, at := vcsInfo()
		if info.GitCommit == "" {
			info.GitCommit = revision
			if modified && revision != "" {
				info.GitCommit += "-dirty"
			}
		}
		if info.BuildDate == "" {
			info.BuildDate = at
		}
	}
	return info
}

func vcsInfo() (revision string, modified bool, at string) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false, ""
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		case "vcs.time":
			at = setting.Value
		}
	}
	return revision, modified, at
}

// String returns a formatted version string
func (b BuildInfo) String() string {
	result := fmt.Sprintf("confluo version %s", b.Version)

	if b.GitCommit != "" {
		result += fmt.Sprintf(" (%s)", b.GitCommit)
	}
	if b.BuildDate != "" {
		result += fmt.Sprintf(" built on %s", b.BuildDate)
	}
	result += fmt.Sprintf(" %s %s", b.GoVersion, b.Platform)

	return result
}
