// Package version holds the revizto CLI version.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/revizto/internal/version.Version=...".
var Version = "0.1.0-dev"
