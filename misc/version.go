// Package misc keeps program identity: name, version and source revision.
package misc

import (
	"runtime/debug"
)

const appName = "fx2tw"

// Set by linker: -X fx2tw/misc.version=... -X fx2tw/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns source revision program was built from. When not set by
// linker it comes from VCS stamp in build info.
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
