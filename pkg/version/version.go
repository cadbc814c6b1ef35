// Package version holds the release version reported by --version.
package version

// Version is the current release. Release builds override it with
// -ldflags "-X github.com/vanderheijden86/listview/pkg/version.Version=...".
var Version = "0.4.0"
