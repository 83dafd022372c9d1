package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupor-github/junction/util"
)

const cfgPath = "/cfg/config.toml"

func newTestFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/srv/media", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/srv/media/notes.txt", []byte("some notes\n"), 0o644))
	return fs
}

func runCLI(t *testing.T, fs afero.Fs, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(fs, append([]string{"junction", "--config", cfgPath}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestAliasArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"xdg-open", []string{"/usr/bin/xdg-open", "http://example.com"}, []string{"open", "http://example.com"}},
		{"xdg-open bare", []string{"xdg-open", "/tmp"}, []string{"open", "/tmp"}},
		{"junction", []string{"junction", "info", "/"}, []string{"info", "/"}},
		{"empty", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, aliasArgs(tc.args))
		})
	}
}

func TestCommandString(t *testing.T) {
	for _, c := range []command{cmdOpen, cmdInfo, cmdParse, cmdCopy, cmdIcon, cmdPrefix} {
		assert.NotContains(t, c.String(), "bad command")
	}
	assert.Equal(t, "bad command 99", command(99).String())
}

func TestInfo(t *testing.T) {
	code, out, errOut := runCLI(t, newTestFs(t), "info", "/srv/media", "x-junction:///srv/media/notes.txt", "https://example.com/?a=b&c=d")
	require.Equal(t, exitSuccess, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	expect := []util.Resource{
		{Resource: "/srv/media", Scheme: "file", ContentType: "inode/directory"},
		{Resource: "/srv/media/notes.txt", Scheme: "file", ContentType: "text/plain"},
		{Resource: "https://example.com/?a=b&c=d", Scheme: "https", ContentType: "x-scheme-handler/https"},
	}
	for i, line := range lines {
		var got util.Resource
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, expect[i], got)
	}
	assert.Contains(t, lines[2], "&c=d")
}

func TestParse(t *testing.T) {
	code, out, errOut := runCLI(t, newTestFs(t), "parse", "/", "/foo/", "mailto:foo@bar.com")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "file:///\nfile:///foo/\nmailto:foo@bar.com\n", out)
}

func TestIconAndPrefixSandboxed(t *testing.T) {
	fs := newTestFs(t)

	code, out, errOut := runCLI(t, fs, "--sandbox", "always", "icon", "/usr/share/hello.png", "/home/foo/bar.png")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "/run/host/usr/share/hello.png\n/home/foo/bar.png\n", out)

	code, out, errOut = runCLI(t, fs, "--sandbox", "always", "prefix", "--", "foo", "--bar")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "flatpak-spawn --host foo --bar\n", out)

	code, out, errOut = runCLI(t, fs, "--sandbox", "never", "prefix", "--", "foo", "--bar")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "foo --bar\n", out)
}

func TestSandboxFromConfig(t *testing.T) {
	fs := newTestFs(t)
	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte(`sandbox = "always"`), 0o600))

	code, out, errOut := runCLI(t, fs, "icon", "/etc/foo/hello.png")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "/run/host/etc/foo/hello.png\n", out)

	// flag wins over file
	code, out, errOut = runCLI(t, fs, "--sandbox", "never", "icon", "/etc/foo/hello.png")
	require.Equal(t, exitSuccess, code, errOut)
	assert.Equal(t, "/etc/foo/hello.png\n", out)
}

func TestExitCodes(t *testing.T) {
	fs := newTestFs(t)

	code, _, _ := runCLI(t, fs, "--no-such-flag", "info", "/")
	assert.Equal(t, exitFlagParseError, code)

	code, _, _ = runCLI(t, fs, "info")
	assert.Equal(t, exitFlagParseError, code)

	code, _, _ = runCLI(t, fs, "--sandbox", "sometimes", "info", "/")
	assert.Equal(t, exitFlagParseError, code)

	code, _, errOut := runCLI(t, fs, "open", "javascript:alert(1)")
	assert.Equal(t, exitRunError, code)
	assert.Contains(t, errOut, "not allowed")

	require.NoError(t, afero.WriteFile(fs, cfgPath, []byte("sandbox = ["), 0o600))
	code, _, _ = runCLI(t, fs, "info", "/")
	assert.Equal(t, exitConfigError, code)
}
