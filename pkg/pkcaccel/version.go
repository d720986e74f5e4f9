package pkcaccel

// Version is populated at build time via ldflags.
var Version = "v0.0.0-in-progress"

// ModuleVersion returns the semantic version of this module. In development
// it defaults to v0.0.0-in-progress.
func ModuleVersion() string {
	return Version
}
