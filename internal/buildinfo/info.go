// Package buildinfo carries version metadata stamped into the tally
// binary at build time.
package buildinfo

// Set via -ldflags "-X github.com/tallybook/tally/internal/buildinfo.Version=..."
// and friends; the defaults identify an unstamped development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
