package version

import "github.com/fatih/color"

// Version information for the pumlfmt CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionNameColor = color.New(color.FgCyan, color.Bold)
	versionNumColor  = color.New(color.FgGreen, color.Bold)
)

// Colored returns "pumlfmt <version>" with terminal highlighting.
// With colors disabled it degrades to the plain string.
func Colored() string {
	return versionNameColor.Sprint("pumlfmt") + " " + versionNumColor.Sprint(Version)
}
