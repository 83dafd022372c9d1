package util

import (
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Well known content types.
const (
	ContentTypeDirectory = "inode/directory"
	ContentTypeUnknown   = "application/octet-stream"
	ContentTypeZeroSize  = "application/x-zerosize"
)

// FlatpakInfo is the file Flatpak mounts into every sandbox.
const FlatpakInfo = "/.flatpak-info"

// Dirs reports the directories relative locations are resolved against.
type Dirs interface {
	HomeDir() (string, error)
	WorkDir() (string, error)
}

// Sandbox reports whether the current process is confined.
type Sandbox interface {
	Sandboxed() bool
}

// SandboxFunc adapts a function to Sandbox.
type SandboxFunc func() bool

// Sandboxed calls f.
func (f SandboxFunc) Sandboxed() bool {
	return f()
}

// Host is everything the classifier needs from the running system.
type Host interface {
	Dirs
	Sandbox
	ContentType(path string) string
}

// SystemHost answers host queries from the real environment. All filesystem
// access goes through Fs.
type SystemHost struct {
	Fs afero.Fs
	// Sandbox overrides sandbox detection when set.
	Sandbox Sandbox
}

// NewSystemHost returns host backed by the OS filesystem.
func NewSystemHost() *SystemHost {
	return &SystemHost{Fs: afero.NewOsFs()}
}

// HomeDir returns current user home directory.
func (h *SystemHost) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// WorkDir returns current working directory.
func (h *SystemHost) WorkDir() (string, error) {
	return os.Getwd()
}

// Sandboxed is true when running under Flatpak. Checked on every call.
func (h *SystemHost) Sandboxed() bool {
	if h.Sandbox != nil {
		return h.Sandbox.Sandboxed()
	}
	ok, err := afero.Exists(h.Fs, FlatpakInfo)
	if err != nil {
		log.Debug().Err(err).Str("path", FlatpakInfo).Msg("unable to check sandbox marker")
		return false
	}
	return ok
}

// ContentType returns MIME type of the file at path. It never fails: missing
// or unreadable files are reported as ContentTypeUnknown.
func (h *SystemHost) ContentType(path string) string {
	fi, err := h.Fs.Stat(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("content type fallback")
		return ContentTypeUnknown
	}

	switch mode := fi.Mode(); {
	case mode.IsDir():
		return ContentTypeDirectory
	case mode&fs.ModeCharDevice != 0:
		return "inode/chardevice"
	case mode&fs.ModeDevice != 0:
		return "inode/blockdevice"
	case mode&fs.ModeNamedPipe != 0:
		return "inode/fifo"
	case mode&fs.ModeSocket != 0:
		return "inode/socket"
	case !mode.IsRegular():
		return ContentTypeUnknown
	case fi.Size() == 0:
		return ContentTypeZeroSize
	}

	f, err := h.Fs.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("content type fallback")
		return ContentTypeUnknown
	}
	defer f.Close()

	ct := sniff(f)
	if ct == "text/plain" || ct == ContentTypeUnknown {
		if byName := typeByExtension(path); byName != "" {
			return byName
		}
	}
	return ct
}

// typeByExtension looks file name up in system MIME database.
func typeByExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	ct, _, _ := strings.Cut(mime.TypeByExtension(ext), ";")
	return strings.TrimSpace(ct)
}

func sniff(r io.Reader) string {
	mt, err := mimetype.DetectReader(r)
	if err != nil || mt == nil {
		return ContentTypeUnknown
	}
	// drop parameters, i.e. "; charset=utf-8"
	ct, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(ct)
}
