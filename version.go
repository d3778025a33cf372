package main

import (
	"fmt"
	"runtime/debug"
)

const (
	SERVER_NAME    = "Athletos-Web"
	SERVER_VERSION = "1.0.0"
)

// GIT_COMMIT may be set with -ldflags "-X main.GIT_COMMIT=<sha>". Otherwise
// the VCS revision stamped by the Go toolchain is used.
var GIT_COMMIT string

// SERVER_SIGNATURE is sent as the Server header and printed by `version`.
var SERVER_SIGNATURE = fmt.Sprintf("%s/%s (%s)", SERVER_NAME, SERVER_VERSION, buildRevision())

func buildRevision() string {
	if GIT_COMMIT != "" {
		return GIT_COMMIT
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
