package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/hedu/internal/config"
	"github.com/bamsammich/hedu/internal/dump"
	"github.com/bamsammich/hedu/internal/source"
	"github.com/bamsammich/hedu/internal/ui"
)

var version = "dev"

// Exit codes, one per failure category.
const (
	exitOpen        = 1
	exitInteractive = 2
	exitRead        = 3
	exitUsage       = 4
	exitWrite       = 5
)

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(a.run(os.Args[1:]))
}

// app carries the process streams so tests can substitute them.
type app struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer
}

type flags struct {
	chars         bool
	showIdentical bool
	checksum      bool
	skip          int64
	limit         int64
	color         string
	verbose       bool
	quiet         bool
	logFile       string
	showVersion   bool
}

func (a *app) run(args []string) int {
	rootCmd := a.rootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitUsage
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "hedu [flags] [FILE...]",
		Short: "Dump data as hex, collapsing repeated lines",
		Long: `Dump data as hex, collapsing repeated lines.

Each FILE is dumped in 16 byte lines: the offset, the bytes as hex and,
with --chars, a masked character column. Runs of identical lines are
collapsed into a single "(repeats N lines)" marker unless --show-identical
is given. With no FILE, or when FILE is -, standard input is read.

Defaults for --chars, --show-identical, --checksum, --color and --limit can
be set in $XDG_CONFIG_HOME/hedu/config.toml.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.showVersion {
				fmt.Fprintf(a.stdout, "hedu %s\n", version)
				return nil
			}

			logger, closeLog, err := a.setupLogging(f)
			if err != nil {
				return err
			}
			defer closeLog()

			cfg, err := config.Load()
			if err != nil {
				logger.Warn("failed to load config", "path", config.Path(), "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &f, logger)

			style, err := a.style(f.color, cfg.Theme)
			if err != nil {
				return err
			}

			d := dump.New(dump.Options{Out: a.stdout, Logger: logger, Style: style})
			dcfg := dump.Config{
				ShowChars:     f.chars,
				Skip:          f.skip,
				ShowIdentical: f.showIdentical,
				Limit:         f.limit,
				Checksum:      f.checksum,
			}
			a.checkWidth(dcfg, logger)

			if len(args) == 0 {
				args = []string{"-"}
			}

			// Every source is dumped even if an earlier one failed; the
			// first failure decides the exit code.
			var firstErr error
			for i, name := range args {
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(a.stdout)
					}
					fmt.Fprintf(a.stdout, "==> %s <==\n", name)
				}
				if err := a.dumpOne(d, name, dcfg, logger); err != nil && firstErr == nil {
					firstErr = err
				}
			}
			return firstErr
		},
	}

	fl := rootCmd.Flags()
	fl.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fl.BoolVarP(&f.chars, "chars", "c", false, "show character representation")
	fl.VarP(config.NewSizeValue(&f.skip), "skip", "s", "skip the first SIZE bytes (e.g. 512, 0x200, 4KiB)")
	fl.VarP(config.NewSizeValue(&f.limit), "limit", "l", "stop after SIZE bytes (0 = unlimited)")
	fl.BoolVarP(&f.showIdentical, "show-identical", "i", false, "show identical lines instead of collapsing them")
	fl.BoolVar(&f.checksum, "checksum", false, "print a BLAKE3 digest of the dumped bytes")
	fl.StringVar(&f.color, "color", "auto", "colorize output: auto, always or never")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "suppress all log output except warnings and errors")
	fl.StringVar(&f.logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

// setupLogging builds the process logger. The returned func closes the log
// file, if any.
func (a *app) setupLogging(f flags) (*slog.Logger, func(), error) {
	logLevel := slog.LevelInfo
	if f.verbose {
		logLevel = slog.LevelDebug
	} else if f.quiet {
		logLevel = slog.LevelWarn
	}
	textHandler := slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	var logHandler slog.Handler = textHandler
	closeLog := func() {}
	if f.logFile != "" {
		lf, err := os.Create(f.logFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeLog = func() { lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)
	return logger, closeLog, nil
}

func (a *app) style(mode string, theme config.ThemeConfig) (dump.Style, error) {
	switch mode {
	case "never":
		return dump.PlainStyle{}, nil
	case "always":
		return ui.NewTheme(a.stdout, theme, true), nil
	case "auto", "":
		if ui.IsTTY(a.stdout) {
			return ui.NewTheme(a.stdout, theme, false), nil
		}
		return dump.PlainStyle{}, nil
	default:
		return nil, fmt.Errorf("invalid --color %q (use auto, always or never)", mode)
	}
}

// checkWidth warns when stdout is a terminal too narrow for the dump lines.
func (a *app) checkWidth(cfg dump.Config, logger *slog.Logger) {
	if w, ok := ui.TermWidth(a.stdout); ok {
		warnIfWraps(w, cfg, logger)
	}
}

func warnIfWraps(columns int, cfg dump.Config, logger *slog.Logger) bool {
	need := dump.LineWidth(cfg.ShowChars)
	if columns >= need {
		return false
	}
	hint := "widen the terminal"
	if cfg.ShowChars {
		hint = "widen the terminal or drop --chars"
	}
	logger.Warn("dump lines will wrap", "columns", columns, "needed", need, "hint", hint)
	return true
}

// dumpOne opens name, dumps it and closes it again.
func (a *app) dumpOne(d *dump.Dumper, name string, cfg dump.Config, logger *slog.Logger) error {
	var src source.Source
	if name == "-" {
		logger.Debug("reading from stdin")
		s, err := source.Stdin(a.stdin, logger)
		if err != nil {
			logger.Warn(err.Error())
			return &exitError{code: exitInteractive, err: err}
		}
		src = s
	} else {
		logger.Debug("opening source", "path", name)
		f, err := source.Open(name)
		if err != nil {
			logger.Error("could not open source", "error", err)
			return &exitError{code: exitOpen, err: err}
		}
		defer f.Close()
		src = f
	}

	res, err := d.Dump(src, cfg)
	if err != nil {
		logger.Error("could not dump data", "source", name, "error", err)
		var readErr *dump.ReadError
		if errors.As(err, &readErr) {
			return &exitError{code: exitRead, err: err}
		}
		return &exitError{code: exitWrite, err: err}
	}
	logger.Debug("dump finished",
		"source", name,
		"bytes", res.BytesRead,
		"skipped", res.Skipped,
		"lines", res.Lines,
		"collapsed", res.Collapsed,
	)
	return nil
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(cmd *cobra.Command, defaults config.DefaultsConfig, f *flags, logger *slog.Logger) {
	if !cmd.Flags().Changed("chars") && defaults.Chars != nil {
		f.chars = *defaults.Chars
	}
	if !cmd.Flags().Changed("show-identical") && defaults.ShowIdentical != nil {
		f.showIdentical = *defaults.ShowIdentical
	}
	if !cmd.Flags().Changed("checksum") && defaults.Checksum != nil {
		f.checksum = *defaults.Checksum
	}
	if !cmd.Flags().Changed("color") && defaults.Color != nil {
		f.color = *defaults.Color
	}
	if !cmd.Flags().Changed("limit") && defaults.Limit != nil {
		n, err := config.ParseSize(*defaults.Limit)
		if err != nil {
			logger.Warn("ignoring config limit", "error", err)
		} else {
			f.limit = n
		}
	}
}

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }
