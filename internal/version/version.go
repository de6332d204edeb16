// Package version holds the build version of communitymap.
package version

import "fmt"

var (
	// Version is the semantic version of the current build.
	Version = "0.3.1"
	// DevVersion is the version suffix used outside prod mode.
	DevVersion = "dev"
)

// GetCurrentVersion returns the version string for the given run mode.
func GetCurrentVersion(mode string) string {
	if mode == "prod" {
		return Version
	}
	return fmt.Sprintf("%s-%s", Version, DevVersion)
}
