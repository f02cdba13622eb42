// Package version holds the application version, overridable at build time
// via -ldflags "-X github.com/invtrack/investment-tracker/internal/version.Version=v1.2.3".
package version

// Version is the application version string.
var Version = "dev"
