package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bulga138/cog/config"
	"github.com/bulga138/cog/editor"
	"github.com/bulga138/cog/logger"
	"github.com/bulga138/cog/terminal"
	"github.com/bulga138/cog/version"
)

// exitMissingArgument is the status used when no file name is given.
const exitMissingArgument = 100

// ErrMissingArgument is returned when the file argument is absent.
var ErrMissingArgument = errors.New("missing file name")

type options struct {
	configPath string
	initConfig bool
	debug      bool
	noColor    bool
}

func main() {
	term := terminal.New()
	code := run(os.Args[1:], term)
	term.Close()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(args []string, term terminal.Terminal) int {
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(term)
	cmd.SetArgs(args)
	cmd.SetIn(term.Stdin())
	cmd.SetOut(term.Stdout())
	cmd.SetErr(term.Stderr())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(term.Stderr(), "Error: %v\n", err)
		if errors.Is(err, ErrMissingArgument) {
			fmt.Fprint(term.Stderr(), cmd.UsageString())
			return exitMissingArgument
		}
		return 1
	}
	return 0
}

func newRootCmd(term terminal.Terminal) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "cog [flags] <file>",
		Short: "A minimal interactive line editor",
		Long: `cog loads a text file into a line buffer and edits it with
single-letter commands read from standard input:

  n          print all lines with their numbers
  a          append lines until a line containing only "."
  d <line>   delete the given line (numbers start at 1)
  q          save the file and quit`,
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(term, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path (default ~/.config/cog/config.toml)")
	cmd.Flags().BoolVar(&opts.initConfig, "init-config", false, "write a default config file and exit")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func runEditor(term terminal.Terminal, opts options, args []string) error {
	if opts.initConfig {
		path, err := config.SaveConfig(config.DefaultConfig(), opts.configPath)
		if err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Fprintf(term.Stdout(), "Config written to %s\n", path)
		return nil
	}

	if len(args) == 0 {
		return ErrMissingArgument
	}
	filename := args[0]

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if opts.noColor {
		cfg.UI.Color = false
	}

	setupLogging(cfg, opts.debug)
	defer logger.Close()

	logger.Info("cog started", "version", version.Version, "file", filename)
	logger.Debug("config loaded", "config", fmt.Sprintf("%+v", cfg))

	e, err := editor.NewEditor(term, cfg, filename)
	if err != nil {
		return fmt.Errorf("error initializing editor: %w", err)
	}
	if err := e.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}

	logger.Info("cog exited cleanly")
	return nil
}

// setupLogging turns the file logger on when the config enables it or
// --debug is set; otherwise records are discarded.
func setupLogging(cfg config.Config, debug bool) {
	if !cfg.Log.Enabled && !debug {
		logger.Disable()
		return
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil || debug {
		level, _ = logger.ParseLevel("debug")
	}
	logger.InitLogger(level, cfg.Log.File)
}
