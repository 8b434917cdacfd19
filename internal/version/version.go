package version

import "fmt"

var (
	// Version is the semantic version of the build, overridable via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version line with commit and build time.
func Full() string {
	return fmt.Sprintf("home-sentry %s (commit %s, built %s)", Version, Commit, BuildTime)
}
