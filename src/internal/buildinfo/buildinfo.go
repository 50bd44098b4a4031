package buildinfo

import (
	"fmt"
	"runtime"
)

// LibraryVersion is injected at build time via -ldflags
var LibraryVersion = "dev"

// UserAgent identifies the interpreter and the Go runtime it was built with.
func UserAgent() string {
	return fmt.Sprintf("gopher-tape/%s (Go/%s)", LibraryVersion, runtime.Version()[2:]) // Remove "go" prefix
}

// Platform describes the runtime target, e.g. "go 1.25 [amd64-linux]".
func Platform() string {
	return fmt.Sprintf("go %s [%s-%s]", runtime.Version()[2:], runtime.GOARCH, runtime.GOOS)
}
