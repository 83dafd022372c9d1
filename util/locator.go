package util

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// SchemeFile is the scheme of every local filesystem locator.
const SchemeFile = "file"

// Kind tells how a locator was written.
type Kind int

const (
	// Opaque is anything else: relative paths, empty input, malformed
	// scheme prefixes. Resolved against the working directory.
	Opaque Kind = iota
	// HomeRelative is "~" or "~/...".
	HomeRelative
	// AbsolutePath starts with "/".
	AbsolutePath
	// FileURI is a local "file:" URI.
	FileURI
	// GenericURI is any other "scheme:..." string, kept as is.
	GenericURI
)

func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case HomeRelative:
		return "home-relative"
	case AbsolutePath:
		return "absolute-path"
	case FileURI:
		return "file-uri"
	case GenericURI:
		return "uri"
	default:
		return "unknown"
	}
}

// RFC 3986 scheme followed by colon.
var reScheme = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.\-]*):`)

// Locator is a parsed user supplied location.
type Locator struct {
	kind   Kind
	raw    string
	scheme string
	// bare absolute path for file locators
	path string
}

// Kind returns how locator was written.
func (l Locator) Kind() Kind { return l.kind }

// Scheme returns lower-cased scheme, "file" for local paths. Empty when the
// input could not be resolved at all.
func (l Locator) Scheme() string { return l.scheme }

// Path returns bare absolute path for file locators, empty otherwise.
func (l Locator) Path() string { return l.path }

// IsFile reports whether locator names local filesystem object.
func (l Locator) IsFile() bool { return l.scheme == SchemeFile && l.path != "" }

// String returns canonical form: "file://" + path for local paths, the input
// unchanged for URIs.
func (l Locator) String() string {
	switch l.kind {
	case FileURI, GenericURI:
		return l.raw
	}
	if l.path == "" {
		return l.raw
	}
	return "file://" + l.path
}

// Parse turns arbitrary input into locator using the system directories.
// It never fails.
func Parse(input string) Locator {
	return ParseWith(NewSystemHost(), input)
}

// ParseWith is Parse with explicit directory lookups.
func ParseWith(dirs Dirs, input string) Locator {
	switch {
	case input == "~" || strings.HasPrefix(input, "~/"):
		return parseHome(dirs, input)
	case strings.HasPrefix(input, "/"):
		return Locator{kind: AbsolutePath, raw: input, scheme: SchemeFile, path: input}
	}

	if m := reScheme.FindStringSubmatch(input); m != nil {
		scheme := strings.ToLower(m[1])
		if scheme == SchemeFile {
			if p, ok := parseFileURI(input[len(m[0]):]); ok {
				return Locator{kind: FileURI, raw: input, scheme: SchemeFile, path: p}
			}
		}
		return Locator{kind: GenericURI, raw: input, scheme: scheme}
	}

	return parseOpaque(dirs, input)
}

func parseHome(dirs Dirs, input string) Locator {
	home, err := dirs.HomeDir()
	if err != nil || !filepath.IsAbs(home) {
		log.Debug().Err(err).Str("input", input).Msg("unable to resolve home directory")
		return Locator{kind: HomeRelative, raw: input}
	}
	rest := input[1:]
	if rest == "/" {
		rest = ""
	}
	p := strings.TrimSuffix(home, "/") + rest
	if p == "" {
		p = "/"
	}
	return Locator{kind: HomeRelative, raw: input, scheme: SchemeFile, path: p}
}

func parseOpaque(dirs Dirs, input string) Locator {
	wd, err := dirs.WorkDir()
	if err != nil || !filepath.IsAbs(wd) {
		log.Debug().Err(err).Str("input", input).Msg("unable to resolve relative location")
		return Locator{kind: Opaque, raw: input}
	}
	return Locator{kind: Opaque, raw: input, scheme: SchemeFile, path: filepath.Join(wd, input)}
}

// parseFileURI extracts local path from the part of "file:" URI following
// the colon. Remote hosts are not local files.
func parseFileURI(rest string) (string, bool) {
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		if i := strings.IndexByte(rest, '/'); i != 0 {
			host := rest
			rest = ""
			if i > 0 {
				host, rest = host[:i], host[i:]
			}
			if !strings.EqualFold(host, "localhost") {
				return "", false
			}
		}
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if !strings.HasPrefix(rest, "/") {
		return "", false
	}
	if p, err := url.PathUnescape(rest); err == nil {
		rest = p
	}
	return rest, true
}
