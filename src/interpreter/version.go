package interpreter

import "github.com/seuros/gopher-tape/src/internal/buildinfo"

// Version returns the current version of the interpreter
func Version() string {
	return buildinfo.LibraryVersion
}

// UserAgent returns the identification string used in telemetry and the CLI
func UserAgent() string {
	return buildinfo.UserAgent()
}

// Platform returns the Go version and target the binary was built for
func Platform() string {
	return buildinfo.Platform()
}
