package common

import (
	"fmt"

	"github.com/ternarybob/banner"
)

// Version metadata, overridden via -ldflags at release build time.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the version string shown in the banner and health output.
func GetVersion() string {
	return Version
}

// GetFullVersion returns the version with build metadata for the /version endpoint.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// PrintBanner prints the startup banner.
func PrintBanner(version string) {
	banner.PrintSimple("Bill Auditor", version)
}
