package launcher

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/skratchdot/open-golang/open"

	"github.com/rupor-github/junction/util"
)

var (
	// ErrBlockedScheme is returned for schemes which are never handed to other programs.
	ErrBlockedScheme = errors.New("scheme is not allowed")
	// ErrUnresolved is returned when location could not be resolved at all.
	ErrUnresolved = errors.New("unable to resolve location")
)

// blockedSchemes lists URI schemes that should not be passed to handlers.
var blockedSchemes = map[string]bool{
	"data":       true,
	"javascript": true,
	"vbscript":   true,
}

// opener is the function used to open resources with desktop default handler.
// It defaults to open.Run and can be overridden in tests to avoid launching
// real applications.
var opener = open.Run

// Launcher hands classified locations to handler programs.
type Launcher struct {
	host util.Host
}

// New initializes Launcher structure.
func New(h util.Host) *Launcher {
	return &Launcher{host: h}
}

// Host returns host launcher was created with.
func (l *Launcher) Host() util.Host {
	return l.host
}

// Resolve classifies ref and checks that it may be launched.
func (l *Launcher) Resolve(ref string) (util.Resource, error) {
	res := util.ReadResource(l.host, ref)
	log.Debug().
		Str("ref", ref).
		Str("resource", res.Resource).
		Str("scheme", res.Scheme).
		Str("content_type", res.ContentType).
		Msg("resolved location")

	if res.Scheme == "" {
		return res, fmt.Errorf("%w: %q", ErrUnresolved, ref)
	}
	if blockedSchemes[res.Scheme] {
		return res, fmt.Errorf("URI scheme %q: %w", res.Scheme, ErrBlockedScheme)
	}
	return res, nil
}

// Open passes location to desktop default handler.
func (l *Launcher) Open(ref string) (util.Resource, error) {
	res, err := l.Resolve(ref)
	if err != nil {
		return res, err
	}
	log.Info().Str("resource", res.Resource).Msg("opening with default handler")
	if err := opener(res.Resource); err != nil {
		return res, fmt.Errorf("unable to open %q: %w", res.Resource, err)
	}
	return res, nil
}

// OpenWith runs handler command line for location. When sandboxed the
// handler is started on host.
func (l *Launcher) OpenWith(ref, commandLine string) (util.Resource, error) {
	res, err := l.Resolve(ref)
	if err != nil {
		return res, err
	}

	expanded, err := ExpandCommandLine(commandLine, res)
	if err != nil {
		return res, err
	}
	argv, err := SplitCommandLine(util.PrefixCommandLineForHost(l.host, expanded))
	if err != nil {
		return res, err
	}
	if argv[0], err = lookupExecutable(argv[0]); err != nil {
		return res, err
	}

	log.Info().Strs("argv", argv).Msg("starting handler")
	if err := spawner(argv); err != nil {
		return res, fmt.Errorf("unable to start %q: %w", argv[0], err)
	}
	return res, nil
}
