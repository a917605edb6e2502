// Package cli provides the command-line interface for textbreak.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/gogpu/textbreak"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	return newApp(os.Stdin, os.Stdout, os.Stderr).Run(ctx, args)
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "textbreak",
		Usage:     "Wrap text at Unicode line break opportunities",
		ArgsUsage: "[text...]",
		Version:   Version + " (" + Commit + ")",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags:     globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureColors(cmd)
			configureLogging(cmd)
			return ctx, nil
		},
		Action: wrapAction,
		Commands: []*cli.Command{
			segmentsCommand(),
			measureCommand(),
		},
	}
}

// configureColors sets up color output based on CLI flags.
// The color setting of the configuration is applied once it is loaded.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		color.NoColor = true
	}
}

// configureLogging installs the library logger based on CLI flags.
// Without --verbose or --debug the library stays silent.
func configureLogging(cmd *cli.Command) {
	var level slog.Level
	switch {
	case cmd.Bool("debug"):
		level = slog.LevelDebug
	case cmd.Bool("verbose"):
		level = slog.LevelWarn
	default:
		textbreak.SetLogger(nil)
		return
	}

	h := slog.NewTextHandler(errWriter(cmd), &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})
	textbreak.SetLogger(slog.New(h))
	textbreak.Logger().Debug("logging configured", slog.String("level", level.String()))
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
