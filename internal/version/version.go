package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the accumc CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Name is the compiler name written into listing banners.
const Name = "accumc"

// Compiler returns "accumc <version>", used in the listing header.
func Compiler() string {
	return Name + " " + Version
}

// Colored renders Version with major/minor/patch highlighted.
// Pre-release suffixes and non-semver strings are left uncolored.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info returns the multi-line text printed by `accumc version`.
func Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Name, Colored())
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
