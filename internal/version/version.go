// Package version reports which build of rfref is running.
package version

import "fmt"

// Commit and BuildTime are stamped by the release build:
//
//	go build -ldflags "-X github.com/example/rfref/internal/version.Commit=$(git rev-parse HEAD)"
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String is the text printed by rfref --version.
func String() string {
	return fmt.Sprintf("rfref dev (commit: %s, built: %s)", shortCommit(), BuildTime)
}

// shortCommit abbreviates the commit hash to seven characters, as git does.
func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
