package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/rupor-github/junction/util"
)

const (
	// AppName names configuration directory.
	AppName = "junction"
	// CfgFile is configuration file name inside of it.
	CfgFile = "config.toml"
	// CfgEnv overrides configuration file location.
	CfgEnv = "JUNCTION_CONFIG"
)

// Sandbox detection modes.
const (
	SandboxAuto   = "auto"
	SandboxAlways = "always"
	SandboxNever  = "never"
)

// ErrBadSandboxMode is returned for unknown sandbox detection mode.
var ErrBadSandboxMode = errors.New("bad sandbox mode")

// Values is the content of configuration file.
type Values struct {
	Debug bool `toml:"debug"`
	// Sandbox is one of "auto", "always" or "never".
	Sandbox string `toml:"sandbox"`
	// DefaultHandler is command line used to open locations, desktop
	// default handler is used when empty.
	DefaultHandler string `toml:"default_handler,omitempty"`
}

// Defaults returns configuration used when there is no file.
func Defaults() Values {
	return Values{Sandbox: SandboxAuto}
}

// Path returns configuration file location: $JUNCTION_CONFIG or
// $XDG_CONFIG_HOME/junction/config.toml.
func Path() string {
	if p := os.Getenv(CfgEnv); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, AppName, CfgFile)
}

// Load reads configuration from path on top of defaults. Missing file is not
// an error.
func Load(fs afero.Fs, path string) (Values, error) {
	vals := Defaults()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("no config file, using defaults")
			return vals, nil
		}
		return vals, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &vals); err != nil {
		return vals, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}
	if err := vals.Validate(); err != nil {
		return vals, fmt.Errorf("config %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("loaded config file")
	return vals, nil
}

// Save writes values to path creating parent directories.
func Save(fs afero.Fs, path string, vals Values) error {
	data, err := toml.Marshal(&vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values.
func (v Values) Validate() error {
	switch v.Sandbox {
	case SandboxAuto, SandboxAlways, SandboxNever:
		return nil
	default:
		return fmt.Errorf("%w %q, expecting %q, %q or %q",
			ErrBadSandboxMode, v.Sandbox, SandboxAuto, SandboxAlways, SandboxNever)
	}
}

// SandboxOverride returns forced sandbox state, nil when detection is automatic.
func (v Values) SandboxOverride() util.Sandbox {
	switch v.Sandbox {
	case SandboxAlways:
		return util.SandboxFunc(func() bool { return true })
	case SandboxNever:
		return util.SandboxFunc(func() bool { return false })
	default:
		return nil
	}
}
