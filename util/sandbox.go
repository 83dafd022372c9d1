package util

import (
	"path/filepath"
	"strings"
)

const (
	// HostSpawn runs command outside of Flatpak sandbox.
	HostSpawn = "flatpak-spawn"
	// HostPrefix is where host filesystem is mirrored inside sandbox.
	HostPrefix = "/run/host"
)

// Roots visible inside sandbox as they are on host.
var sharedRoots = []string{"/home", "/opt"}

// PrefixCommandLineForHost makes command line run on host when sandboxed.
// Command line is not re-quoted. Already prefixed command lines are returned
// unchanged.
func PrefixCommandLineForHost(sb Sandbox, commandLine string) string {
	if !sb.Sandboxed() {
		return commandLine
	}
	if strings.HasPrefix(commandLine, HostSpawn+" ") {
		return commandLine
	}
	return HostSpawn + " --host " + commandLine
}

// GetIconFilename returns path to icon file as seen from inside of sandbox.
// Relative paths are returned as is.
func GetIconFilename(sb Sandbox, path string) string {
	if !sb.Sandboxed() || !filepath.IsAbs(path) {
		return path
	}
	for _, root := range sharedRoots {
		if path == root || strings.HasPrefix(path, root+"/") {
			return path
		}
	}
	return HostPrefix + path
}
