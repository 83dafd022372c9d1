package launcher

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"

	"github.com/rupor-github/junction/util"
)

var (
	// ErrEmptyCommand is returned when handler command line has no program.
	ErrEmptyCommand = errors.New("empty command line")
	// ErrNotExecutable is returned when handler program cannot be run.
	ErrNotExecutable = errors.New("not executable")
	// ErrNotFile is returned when %f or %F is used with non-file resource.
	ErrNotFile = errors.New("not a local file")
)

// spawner starts argv without waiting for it, lookPath finds programs
// by name. Both are replaced in tests.
var (
	spawner  = spawn
	lookPath = exec.LookPath
)

// ExpandCommandLine substitutes desktop entry field codes with resource.
// %f and %F require local file. When command line has no file or URL field
// codes resource is appended to it. Substituted values are quoted.
func ExpandCommandLine(commandLine string, res util.Resource) (string, error) {

	var (
		buf  strings.Builder
		used bool
	)

	for i := 0; i < len(commandLine); i++ {
		c := commandLine[i]
		if c != '%' || i == len(commandLine)-1 {
			buf.WriteByte(c)
			continue
		}
		i++
		switch code := commandLine[i]; code {
		case '%':
			buf.WriteByte('%')
		case 'u', 'U':
			q, err := quote(uriOf(res))
			if err != nil {
				return "", err
			}
			buf.WriteString(q)
			used = true
		case 'f', 'F':
			if !res.IsFile() {
				return "", fmt.Errorf("%q: %w", res.Resource, ErrNotFile)
			}
			q, err := quote(res.Resource)
			if err != nil {
				return "", err
			}
			buf.WriteString(q)
			used = true
		case 'i', 'c', 'k', 'd', 'D', 'n', 'N', 'v', 'm':
			// no desktop entry to take these from, deprecated ones are ignored anyway
		default:
			return "", fmt.Errorf("unknown field code %%%c in %q", code, commandLine)
		}
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", ErrEmptyCommand
	}
	if !used {
		q, err := quote(res.Resource)
		if err != nil {
			return "", err
		}
		out += " " + q
	}
	return out, nil
}

// SplitCommandLine splits command line into arguments the way shell would.
func SplitCommandLine(commandLine string) ([]string, error) {
	argv, err := shell.Fields(commandLine, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to parse command line %q: %w", commandLine, err)
	}
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

func uriOf(res util.Resource) string {
	if res.IsFile() {
		return (&url.URL{Scheme: util.SchemeFile, Path: res.Resource}).String()
	}
	return res.Resource
}

func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return "", fmt.Errorf("unable to quote %q: %w", s, err)
	}
	return q, nil
}

// lookupExecutable returns full path to program.
func lookupExecutable(name string) (string, error) {
	if filepath.IsAbs(name) {
		if err := util.CheckExecutable(name); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNotExecutable, err)
		}
		return name, nil
	}
	p, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotExecutable, err)
	}
	return p, nil
}
