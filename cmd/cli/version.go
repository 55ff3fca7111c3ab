package main

import "runtime/debug"

// set with -ldflags "-X main.version=..."
var version = ""

// versionString prefers the linker-provided version, then the module version of the binary.
func versionString() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
