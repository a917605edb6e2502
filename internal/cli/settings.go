package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/gogpu/textbreak"
	"github.com/gogpu/textbreak/internal/config"
	"github.com/gogpu/textbreak/measure"
	"github.com/gogpu/textbreak/segment"
)

// defaultWidth is the line width used when none is configured and the
// output is not a terminal.
const defaultWidth = 80

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Load settings from a YAML or TOML file",
			Sources: cli.EnvVars("TEXTBREAK_CONFIG"),
		},
		&cli.FloatFlag{
			Name:    "width",
			Aliases: []string{"w"},
			Usage:   "Maximum line width (0 uses the terminal width)",
		},
		&cli.StringFlag{
			Name:    "font",
			Aliases: []string{"f"},
			Usage:   "CSS font shorthand, e.g. \"bold 14px sans-serif\"",
		},
		&cli.IntFlag{
			Name:    "max-lines",
			Aliases: []string{"n"},
			Usage:   "Maximum number of lines (-1 for no limit)",
		},
		&cli.StringFlag{
			Name:    "measurer",
			Aliases: []string{"m"},
			Usage:   "Width measurer (opentype, shaping, cells, runewidth, table)",
		},
		&cli.StringFlag{
			Name:  "widths",
			Usage: "Grapheme width table file (implies --measurer table)",
		},
		&cli.StringFlag{
			Name:    "segmenter",
			Aliases: []string{"s"},
			Usage:   "Segmentation backend (" + strings.Join(segment.Names(), ", ") + ")",
		},
		&cli.StringFlag{
			Name:  "truncate",
			Usage: "Truncation policy for the last line (ellipsis, hard)",
		},
		&cli.StringFlag{
			Name:  "ellipsis",
			Usage: "Truncation marker",
		},
		&cli.BoolFlag{
			Name:  "each-line",
			Usage: "Wrap every input line separately, in parallel",
		},
		&cli.BoolFlag{
			Name:  "collapse",
			Usage: "Trim the text and collapse runs of spaces",
		},
		&cli.BoolFlag{
			Name:  "ambiguous-wide",
			Usage: "Count East Asian ambiguous characters as two cells",
		},
		&cli.IntFlag{
			Name:  "cache",
			Usage: "Measurement cache capacity per shard (0 disables)",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Goroutines used by --each-line (0 uses GOMAXPROCS)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"o"},
			Usage:   "Output format (text, json, yaml)",
		},
		&cli.BoolFlag{
			Name:  "show-widths",
			Usage: "Print the width of each line in text output",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Color output (auto, always, never)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log lines that overflow the width limit",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug output (debug level logging, implies verbose)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}

// loadSettings merges defaults, the configuration file, the environment
// and explicitly set flags, in increasing precedence.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("width") {
		cfg.Wrap.Width = cmd.Float("width")
	}
	if cmd.IsSet("max-lines") {
		cfg.Wrap.MaxLines = cmd.Int("max-lines")
	}
	if cmd.IsSet("truncate") {
		cfg.Wrap.Truncate = cmd.String("truncate")
	}
	if cmd.IsSet("ellipsis") {
		cfg.Wrap.Ellipsis = cmd.String("ellipsis")
	}
	if cmd.IsSet("collapse") {
		cfg.Wrap.Collapse = cmd.Bool("collapse")
	}
	if cmd.IsSet("font") {
		cfg.Measure.Font = cmd.String("font")
	}
	if cmd.IsSet("measurer") {
		cfg.Measure.Measurer = cmd.String("measurer")
	}
	if cmd.IsSet("widths") {
		cfg.Measure.Widths = cmd.String("widths")
	}
	if cmd.IsSet("ambiguous-wide") {
		cfg.Measure.AmbiguousWide = cmd.Bool("ambiguous-wide")
	}
	if cmd.IsSet("cache") {
		cfg.Measure.Cache = cmd.Int("cache")
	}
	if cmd.IsSet("workers") {
		cfg.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("segmenter") {
		cfg.Segmenter = cmd.String("segmenter")
	}
	if cmd.IsSet("format") {
		cfg.Output.Format = cmd.String("format")
	}
	if cmd.IsSet("show-widths") {
		cfg.Output.Widths = cmd.Bool("show-widths")
	}
	if cmd.IsSet("color") {
		cfg.Output.Color = cmd.String("color")
	}
	if cmd.Bool("no-color") {
		cfg.Output.Color = "never"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	applyColorMode(cfg.Output.Color)
	return cfg, nil
}

func applyColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}
}

// newMeasurer builds the measurer the configuration selects.
func newMeasurer(cfg *config.Config) (measure.Measurer, error) {
	switch cfg.MeasurerName() {
	case config.MeasurerOpenType:
		return measure.NewOpenType(), nil
	case config.MeasurerShaping:
		return measure.NewShaper(), nil
	case config.MeasurerCells:
		return measure.Cells{AmbiguousWide: cfg.Measure.AmbiguousWide}, nil
	case config.MeasurerRuneWidth:
		return measure.NewRuneWidth(cfg.Measure.AmbiguousWide), nil
	case config.MeasurerTable:
		if cfg.Measure.Widths == "" {
			return nil, errors.New("the table measurer requires --widths")
		}
		widths, err := config.LoadWidths(cfg.Measure.Widths)
		if err != nil {
			return nil, err
		}
		table := measure.NewTable(widths)
		if cfg.Measure.Fallback >= 0 {
			table = table.WithFallback(cfg.Measure.Fallback)
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unknown measurer %q", cfg.Measure.Measurer)
	}
}

// newWrapper builds a wrapper from the configuration.
func newWrapper(cfg *config.Config) (*textbreak.Wrapper, error) {
	m, err := newMeasurer(cfg)
	if err != nil {
		return nil, err
	}
	seg, err := segment.Lookup(cfg.Segmenter)
	if err != nil {
		return nil, err
	}
	policy, err := textbreak.ParseTruncatePolicy(cfg.Wrap.Truncate)
	if err != nil {
		return nil, err
	}

	opts := []textbreak.Option{
		textbreak.WithSegmenter(seg),
		textbreak.WithTruncation(policy),
		textbreak.WithEllipsis(cfg.Wrap.Ellipsis),
		textbreak.WithCollapseSpaces(cfg.Wrap.Collapse),
		textbreak.WithWorkers(cfg.Workers),
	}
	if cfg.Measure.Cache > 0 {
		opts = append(opts, textbreak.WithCache(cfg.Measure.Cache))
	}
	return textbreak.New(m, opts...), nil
}

// lineWidth resolves the configured width; zero selects the terminal
// width of out, or defaultWidth when out is not a terminal.
func lineWidth(cfg *config.Config, out io.Writer) float64 {
	if cfg.Wrap.Width > 0 {
		return cfg.Wrap.Width
	}
	return float64(terminalWidth(out))
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok {
		return defaultWidth
	}
	fd := int(f.Fd()) // #nosec G115 - file descriptors fit in int
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return defaultWidth
	}
	return cols
}

// inputText returns the arguments joined by spaces, or all of standard
// input when there are none.
func inputText(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}
	data, err := io.ReadAll(reader(cmd))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
