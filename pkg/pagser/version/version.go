// Package version holds build metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/sllt/pagser/pkg/pagser/version.GitCommit=$(git rev-parse --short HEAD)"
package version

//nolint:gochecknoglobals // overwritten by -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String renders the metadata on one line.
func String() string {
	return Version + " (commit " + GitCommit + ", built " + BuildDate + ")"
}
