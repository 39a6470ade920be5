package buildinfo

// Set via -ldflags at build time, for example:
//
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Version=v0.3.0'
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Commit=1f3c2aa'
//	-X 'github.com/m3rciful/shopbot/core/buildinfo.Date=2026-10-01T09:00:00Z'
var (
	// Version is the release tag of the binary.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "local"
	// Date is the RFC3339 build timestamp.
	Date = ""
)
