package meta

import (
	"fmt"
	"runtime"
)

// Info describes the build of a marbus binary, filled in by the Go linker.
// See the vars below.
type Info struct {
	Version   string `yaml:"version"`
	Build     string `yaml:"build"`
	Branch    string `yaml:"branch"`
	BuildTime string `yaml:"buildTime"`
	Platform  string `yaml:"platform"`
	GoVersion string `yaml:"goVersion"`
	GoTag     string `yaml:"goTag,omitempty"`
}

// These will be filled in using the linker -X flag
var (
	// Version as an arbitrary string
	Version = "dev"

	// Build is the Git sha from when we are building
	Build string

	// Branch is the Git branch that we are building from
	Branch string

	// BuildTimeUTC is the build time in UTC (year/month/day hour:min:sec)
	BuildTimeUTC string

	// GoTag is the Go build tags, see https://golang.org/pkg/go/build/#hdr-Build_Constraints
	GoTag string

	platform = fmt.Sprintf("%s %s", runtime.GOOS, runtime.GOARCH)
)

// GetInfo returns an Info struct populated with the build information.
func GetInfo() Info {
	return Info{
		GoVersion: runtime.Version(),
		Version:   Version,
		Build:     Build,
		Branch:    Branch,
		BuildTime: BuildTimeUTC,
		GoTag:     GoTag,
		Platform:  platform,
	}
}

// String is the one line form used in man pages and logs.
func (i Info) String() string {
	if i.Build == "" {
		return fmt.Sprintf("marbus %s", i.Version)
	}

	return fmt.Sprintf("marbus %s (%s)", i.Version, i.Build)
}
