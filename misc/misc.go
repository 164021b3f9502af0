// Package misc holds build information set by the linker.
package misc

import "runtime/debug"

const appName = "adifc"

var (
	version = "dev"
	// set with -ldflags "-X adifc/misc.gitHash=..."
	gitHash = ""
)

// GetAppName returns name of the program used for logs, temporary files and
// report names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, taking it from build
// info when not set at link time.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
