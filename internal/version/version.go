// Package version carries build metadata injected via -ldflags.
package version

import "fmt"

var (
	App       = "Tezca Gateway"
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	BuildOS   string
	BuildArch string
)

// String returns the version, or "dev" for untagged builds.
func String() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// PrintVersion writes the build information to stdout.
func PrintVersion() {
	fmt.Printf("%s version %s\n", App, String())
	if GitCommit != "" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		fmt.Printf("Git commit: %s\n", commit)
	}
	if BuildTime != "" {
		fmt.Printf("Build time: %s\n", BuildTime)
	}
	if GoVersion != "" {
		fmt.Printf("Go version: %s\n", GoVersion)
	}
	if BuildOS != "" && BuildArch != "" {
		fmt.Printf("Built for: %s/%s\n", BuildOS, BuildArch)
	}
}
