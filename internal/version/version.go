// Package version holds build-time version metadata, set via -ldflags
// the same way the teacher's pkg/version does.
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
