// Package version exposes build-time version metadata.
// The variables are overridden via -ldflags at release time.
package version

// Build metadata, overridable with:
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.3 ...".
//
//nolint:gochecknoglobals // Set by the linker at build time.
var (
	// Version is the semantic version of the build.
	Version = "v0.1.0"
	// Commit is the VCS commit the binary was built from.
	Commit = "none"
	// BuildTime is the timestamp of the build.
	BuildTime = "unknown"
)

// Short returns just the semantic version.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
