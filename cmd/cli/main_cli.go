package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rupor-github/junction/config"
	"github.com/rupor-github/junction/launcher"
	"github.com/rupor-github/junction/misc"
	"github.com/rupor-github/junction/util"
)

const (
	exitSuccess = iota
	_
	_
	_
	_
	_
	exitFlagParseError
	exitConfigError
	exitRunError
)

type command int

const (
	cmdOpen command = iota + 1
	cmdInfo
	cmdParse
	cmdCopy
	cmdIcon
	cmdPrefix
)

func (c command) String() string {
	switch c {
	case cmdOpen:
		return "open location with handler or desktop default"
	case cmdInfo:
		return "print resource, scheme and content type of locations"
	case cmdParse:
		return "print canonical form of locations"
	case cmdCopy:
		return "copy canonical form of location to clipboard"
	case cmdIcon:
		return "print icon paths as seen from sandbox"
	case cmdPrefix:
		return "print command line prepared to run on host"
	default:
		return fmt.Sprintf("bad command %d", c)
	}
}

var (
	errFlags  = errors.New("bad arguments")
	errConfig = errors.New("bad configuration")

	reOpen = regexp.MustCompile(`/?xdg-open$`)
)

type options struct {
	debug   bool
	config  string
	sandbox string
	with    string
}

type app struct {
	fs   afero.Fs
	opts options
	cfg  config.Values
	host *util.SystemHost
	l    *launcher.Launcher
}

func newApp(fs afero.Fs) *app {
	return &app{fs: fs}
}

// setup loads configuration and prepares launcher, flags are applied on top
// of configuration file.
func (a *app) setup(cmd *cobra.Command) error {

	path := a.opts.config
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(a.fs, path)
	if err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}
	if cmd.Flags().Changed("sandbox") {
		cfg.Sandbox = a.opts.sandbox
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errFlags, err)
		}
	}
	a.cfg = cfg

	util.NewLogWriter(config.AppName, cmd.ErrOrStderr(), a.opts.debug || cfg.Debug)

	a.host = &util.SystemHost{Fs: a.fs, Sandbox: cfg.SandboxOverride()}
	a.l = launcher.New(a.host)

	log.Debug().Str("config", path).Str("sandbox", cfg.Sandbox).Bool("sandboxed", a.host.Sandboxed()).Msg("ready")
	return nil
}

func (a *app) open(cmd *cobra.Command, ref string) error {
	with := a.opts.with
	if with == "" {
		with = a.cfg.DefaultHandler
	}

	var err error
	if with != "" {
		_, err = a.l.OpenWith(ref, with)
	} else {
		_, err = a.l.Open(ref)
	}
	return err
}

// checkArgs marks argument count errors as usage errors.
func checkArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errFlags, err)
		}
		return nil
	}
}

func newRootCmd(a *app) *cobra.Command {

	root := &cobra.Command{
		Use:   "junction [options]... [COMMAND] LOCATION",
		Short: "junction - open locations with the right application",
		Long: `junction - open locations with the right application

Location is an absolute path, "~" relative path, URI or x-junction: wrapped
location. When no command is given location is opened.`,
		Version:           fmt.Sprintf("%s (%s) %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		Args:              checkArgs(cobra.ExactArgs(1)),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd, args[0])
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errFlags, err)
	})

	pf := root.PersistentFlags()
	pf.BoolVar(&a.opts.debug, "debug", false, "Print debugging information")
	pf.StringVar(&a.opts.config, "config", "", "Configuration file (default $"+config.CfgEnv+" or "+config.Path()+")")
	pf.StringVar(&a.opts.sandbox, "sandbox", config.SandboxAuto, "Sandbox detection: auto, always or never")
	root.Flags().StringVar(&a.opts.with, "with", "", "Handler command line, desktop entry field codes are expanded")

	openCmd := &cobra.Command{
		Use:   "open LOCATION",
		Short: cmdOpen.String(),
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd, args[0])
		},
	}
	openCmd.Flags().StringVar(&a.opts.with, "with", "", "Handler command line, desktop entry field codes are expanded")

	infoCmd := &cobra.Command{
		Use:   "info LOCATION...",
		Short: cmdInfo.String(),
		Args:  checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			for _, ref := range args {
				if err := enc.Encode(util.ReadResource(a.host, ref)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse LOCATION...",
		Short: cmdParse.String(),
		Args:  checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, ref := range args {
				fmt.Fprintln(cmd.OutOrStdout(), util.ParseWith(a.host, ref).String())
			}
			return nil
		},
	}

	copyCmd := &cobra.Command{
		Use:   "copy LOCATION",
		Short: cmdCopy.String(),
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.l.Copy(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	iconCmd := &cobra.Command{
		Use:   "icon PATH...",
		Short: cmdIcon.String(),
		Args:  checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				fmt.Fprintln(cmd.OutOrStdout(), util.GetIconFilename(a.host, p))
			}
			return nil
		},
	}

	prefixCmd := &cobra.Command{
		Use:   "prefix [--] COMMANDLINE...",
		Short: cmdPrefix.String(),
		Args:  checkArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), util.PrefixCommandLineForHost(a.host, strings.Join(args, " ")))
			return nil
		},
	}

	root.AddCommand(openCmd, infoCmd, parseCmd, copyCmd, iconCmd, prefixCmd)
	return root
}

// aliasArgs turns "xdg-open LOCATION" into "open LOCATION".
func aliasArgs(args []string) []string {
	if len(args) > 0 && reOpen.MatchString(args[0]) {
		return append([]string{"open"}, args[1:]...)
	}
	if len(args) == 0 {
		return nil
	}
	return args[1:]
}

func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {

	root := newRootCmd(newApp(fs))
	root.SetArgs(aliasArgs(args))
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errFlags):
		fmt.Fprintf(stderr, "\n\n*** ERROR: %s\n", err.Error())
		return exitFlagParseError
	case errors.Is(err, errConfig):
		fmt.Fprintf(stderr, "\n\n*** ERROR: %s\n", err.Error())
		return exitConfigError
	default:
		fmt.Fprintf(stderr, "\n\n*** ERROR: %s\n", err.Error())
		return exitRunError
	}
}

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args, os.Stdout, os.Stderr))
}
