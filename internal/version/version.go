// Package version holds the application version, overridable at build time with
// -ldflags "-X github.com/ndewijer/portfolio-vis/internal/version.Version=...".
package version

// Version is the application version.
var Version = "0.3.0"
