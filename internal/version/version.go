// Package version carries build metadata injected via -ldflags.
package version

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String returns the human-readable version line printed by the version
// subcommand.
func String() string {
	return Version + " (" + CommitHash + ", " + BuildDate + ")"
}
