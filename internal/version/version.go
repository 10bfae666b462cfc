// Package version records build metadata for the irlift CLI.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Stamped at link time:
//
//	go build -ldflags "-X irlift/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of the CLI.
	Version = "0.2.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	releaseColor = color.New(color.FgCyan, color.Bold)
	preColor     = color.New(color.Faint)
)

// Colorize highlights the release part of a version string and dims any
// pre-release suffix. Honors color.NoColor, so piped output stays plain.
func Colorize(v string) string {
	rel, pre, found := strings.Cut(v, "-")
	if !found {
		return releaseColor.Sprint(v)
	}
	return releaseColor.Sprint(rel) + preColor.Sprint("-"+pre)
}
