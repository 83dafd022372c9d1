package util

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// TestPropertyPrefixIdempotent verifies prefixing twice gives same result.
func TestPropertyPrefixIdempotent(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		cmd := rapid.StringMatching(`[a-zA-Z0-9_\-./ '"=]{0,40}`).Draw(t, "cmd")
		sb := SandboxFunc(func() bool { return true })

		once := PrefixCommandLineForHost(sb, cmd)
		twice := PrefixCommandLineForHost(sb, once)

		if once != twice {
			t.Fatalf("Not idempotent: first=%q, second=%q", once, twice)
		}
		if !strings.HasSuffix(once, cmd) {
			t.Fatalf("Command line %q not preserved in %q", cmd, once)
		}
	})
}

// TestPropertyPrefixIdentityOnHost verifies nothing changes outside of sandbox.
func TestPropertyPrefixIdentityOnHost(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		cmd := rapid.String().Draw(t, "cmd")
		if rapid.Bool().Draw(t, "prefixed") {
			cmd = HostSpawn + " " + cmd
		}
		if got := PrefixCommandLineForHost(notSandboxed, cmd); got != cmd {
			t.Fatalf("Changed on host: %q -> %q", cmd, got)
		}
	})
}

// TestPropertyIconFilename verifies rewriting rules for absolute paths.
func TestPropertyIconFilename(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		root := rapid.SampledFrom([]string{"/home", "/opt", "/usr", "/etc", "/var", "/srv"}).Draw(t, "root")
		rest := rapid.StringMatching(`(/[a-z0-9_.\-]{1,10}){1,4}`).Draw(t, "rest")
		path := root + rest

		if got := GetIconFilename(notSandboxed, path); got != path {
			t.Fatalf("Changed on host: %q -> %q", path, got)
		}

		got := GetIconFilename(sandboxed, path)
		switch root {
		case "/home", "/opt":
			if got != path {
				t.Fatalf("Shared root rewritten: %q -> %q", path, got)
			}
		default:
			if got != "/run/host"+path {
				t.Fatalf("Expected host mirror for %q, got %q", path, got)
			}
		}
	})
}
