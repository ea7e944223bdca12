package version

import "fmt"

// Set via -ldflags "-X github.com/bulga138/cog/version.Version=..." at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
}
