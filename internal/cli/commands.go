package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/textbreak"
	"github.com/gogpu/textbreak/internal/config"
	"github.com/gogpu/textbreak/segment"
)

var (
	overflow = color.New(color.FgRed).SprintFunc()
	marker   = color.New(color.FgYellow).SprintFunc()
	dim      = color.New(color.Faint).SprintFunc()
	header   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// wrapAction wraps the input text and prints the lines.
func wrapAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	w, err := newWrapper(cfg)
	if err != nil {
		return err
	}
	text, err := inputText(cmd)
	if err != nil {
		return err
	}

	out := writer(cmd)
	maxWidth := lineWidth(cfg, out)

	if cmd.Bool("each-line") {
		results, err := w.WrapAll(ctx, splitLines(text), maxWidth, cfg.Measure.Font, cfg.Wrap.MaxLines)
		if err != nil {
			return err
		}
		return writeResults(out, cfg, results, true, maxWidth)
	}

	res, err := w.Wrap(text, maxWidth, cfg.Measure.Font, cfg.Wrap.MaxLines)
	if err != nil {
		return err
	}
	return writeResults(out, cfg, []*textbreak.Result{res}, false, maxWidth)
}

// splitLines splits text into its input lines, without terminators.
func splitLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// writeResults prints results in the configured format. A batch is
// encoded as an array, a single wrap as an object. In text output a batch
// entry that produced no lines prints as a blank line.
func writeResults(out io.Writer, cfg *config.Config, results []*textbreak.Result, batch bool, maxWidth float64) error {
	var v any = results
	if !batch {
		v = results[0]
	}
	switch strings.ToLower(cfg.Output.Format) {
	case config.FormatJSON:
		return writeJSON(out, v)
	case config.FormatYAML:
		return writeYAML(out, v)
	}

	for _, res := range results {
		if len(res.Lines) == 0 && batch {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		for _, line := range res.Lines {
			if _, err := fmt.Fprintln(out, formatLine(line, maxWidth, cfg.Output.Widths)); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatLine renders a line for text output without its line terminator.
// Lines wider than maxWidth are highlighted.
func formatLine(line textbreak.Line, maxWidth float64, widths bool) string {
	var sb strings.Builder
	for i, g := range line.Graphemes {
		if i == len(line.Graphemes)-1 && segment.IsHardBreak(g.Text) {
			break
		}
		sb.WriteString(g.Text)
	}
	text := sb.String()
	if line.Width > maxWidth {
		text = overflow(text)
	}
	if line.Ellipsis != nil {
		text += marker(line.Ellipsis.Text)
	}
	if widths {
		return dim(fmt.Sprintf("%8.2f ", line.Width)) + text
	}
	return text
}

func segmentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "segments",
		Usage:     "Print grapheme clusters and the line break opportunity after each",
		ArgsUsage: "[text...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			w, err := newWrapper(cfg)
			if err != nil {
				return err
			}
			text, err := inputText(cmd)
			if err != nil {
				return err
			}

			a := w.Analyze(text)
			out := writer(cmd)
			switch strings.ToLower(cfg.Output.Format) {
			case config.FormatJSON:
				return writeJSON(out, a)
			case config.FormatYAML:
				return writeYAML(out, a)
			}

			if _, err := fmt.Fprintln(out, header(fmt.Sprintf("%5s %5s  %-12s %s", "START", "END", "TEXT", "BREAK"))); err != nil {
				return err
			}
			for _, g := range a.Graphemes {
				kind := a.Breaks.KindAt(g.End)
				label := strings.ToLower(kind.String())
				if kind == segment.BreakNone {
					label = dim(label)
				}
				if _, err := fmt.Fprintf(out, "%5d %5d  %-12q %s\n", g.Start, g.End, g.Text, label); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func measureCommand() *cli.Command {
	return &cli.Command{
		Name:      "measure",
		Usage:     "Print the width of every grapheme cluster",
		ArgsUsage: "[text...]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			w, err := newWrapper(cfg)
			if err != nil {
				return err
			}
			text, err := inputText(cmd)
			if err != nil {
				return err
			}

			gs, err := w.Measure(text, cfg.Measure.Font)
			if err != nil {
				return err
			}
			out := writer(cmd)
			switch strings.ToLower(cfg.Output.Format) {
			case config.FormatJSON:
				return writeJSON(out, gs)
			case config.FormatYAML:
				return writeYAML(out, gs)
			}

			var total float64
			for _, g := range gs {
				total += g.Width
				if _, err := fmt.Fprintf(out, "%-12q %8.2f\n", g.Text, g.Width); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(out, "%s %8.2f\n", header(fmt.Sprintf("%-12s", "total")), total)
			return err
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
