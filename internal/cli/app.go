// Package cli implements the textrank command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	urfave "github.com/urfave/cli/v3"

	"github.com/vbalien/textrank/config"
	"github.com/vbalien/textrank/internal/logging"
	"github.com/vbalien/textrank/keywords"
)

const (
	envConfigPath = "TEXTRANK_CONFIG"
	levelDebug    = "debug"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
)

var version = "v0.0.1-default"

// app carries the state shared by the subcommands once Before has run.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Execute creates and runs the CLI application.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newApp(os.Stdin, os.Stdout)
	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		stop()
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *urfave.Command {
	a := &app{}
	return &urfave.Command{
		Name:            "textrank",
		Version:         version,
		Usage:           "Extract keywords from part-of-speech tagged text",
		HideHelpCommand: true,
		Reader:          in,
		Writer:          out,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (optional)",
				Sources: urfave.EnvVars(envConfigPath),
			},
			&urfave.StringFlag{
				Name:  flagLogLevel,
				Usage: "Log level [debug, info, warn, error] (overrides config)",
			},
			&urfave.BoolFlag{
				Name:  flagDebug,
				Usage: "Prints verbose logs, same as --log-level debug",
			},
		},
		Commands: []*urfave.Command{
			a.extractCmd(),
			a.serveCmd(),
		},
		Before: a.before,
	}
}

func (a *app) before(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
	if err := config.LoadEnv(); err != nil {
		return ctx, err
	}

	cfg, err := config.Load(cmd.String(flagConfig))
	if err != nil {
		return ctx, errors.Wrap(err, "loading config")
	}

	if cmd.IsSet(flagLogLevel) {
		cfg.LogLevel = cmd.String(flagLogLevel)
	}
	if cmd.Bool(flagDebug) {
		cfg.LogLevel = levelDebug
	}

	a.cfg = cfg
	a.logger = logging.SetDefaultCLILogger(cfg.LogLevel)
	a.logger.Debug("config loaded",
		"window", cfg.WindowSize,
		"damping", cfg.Damping,
		"min_diff", cfg.MinDiff,
		"max_steps", cfg.MaxSteps,
		"top_n", cfg.TopN,
	)
	return ctx, nil
}

// extractor builds an extractor from the loaded config plus extra options.
func (a *app) extractor(extra ...keywords.Option) *keywords.Extractor {
	opts := append(a.cfg.Options(), extra...)
	opts = append(opts, keywords.WithLogger(a.logger))
	return keywords.New(opts...)
}
