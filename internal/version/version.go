// Package version holds build version information.
package version

// Version is the current agentgate version.
// Overridden at build time via -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"
