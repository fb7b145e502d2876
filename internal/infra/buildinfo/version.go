package buildinfo

import (
	"fmt"
	"runtime"
)

// Build-time variables (set via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info contains build information.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a one-line version string.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s) built %s with %s for %s",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}

// UserAgent returns the User-Agent for a named hublink program.
func UserAgent(program string) string {
	return program + "/" + Version
}
