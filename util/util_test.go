package util

import (
	"errors"

	"github.com/spf13/afero"
)

const testHome = "/home/tester"

// fakeHost is a Host over an in-memory filesystem.
type fakeHost struct {
	SystemHost
	home      string
	wd        string
	sandboxed bool
}

func newFakeHost() *fakeHost {
	fs := afero.NewMemMapFs()
	_ = fs.MkdirAll(testHome+"/.config", 0o755)
	_ = fs.MkdirAll("/etc", 0o755)
	_ = afero.WriteFile(fs, "/etc/os-release", []byte("NAME=\"Test Linux\"\nID=test\n"), 0o644)
	return &fakeHost{
		SystemHost: SystemHost{Fs: fs},
		home:       testHome,
		wd:         "/work",
	}
}

func (h *fakeHost) HomeDir() (string, error) {
	if h.home == "" {
		return "", errors.New("no home")
	}
	return h.home, nil
}

func (h *fakeHost) WorkDir() (string, error) {
	if h.wd == "" {
		return "", errors.New("no working directory")
	}
	return h.wd, nil
}

func (h *fakeHost) Sandboxed() bool { return h.sandboxed }

var (
	sandboxed    = SandboxFunc(func() bool { return true })
	notSandboxed = SandboxFunc(func() bool { return false })
)
