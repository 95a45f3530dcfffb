// Package version carries build metadata stamped in via -ldflags.
package version

var (
	// Version is the current application version
	Version = "2022.10.1"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
