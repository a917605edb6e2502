package textbreak

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gogpu/textbreak/measure"
	"github.com/gogpu/textbreak/segment"
)

// Wrapper wraps text with a fixed measurer and configuration.
// A Wrapper is immutable after New and safe for concurrent use.
type Wrapper struct {
	m    measure.Measurer
	opts options
}

// New creates a Wrapper over m. A nil m selects measure.Default().
func New(m measure.Measurer, opts ...Option) *Wrapper {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if m == nil {
		m = measure.Default()
	}
	if o.cache {
		if _, ok := m.(*measure.Cached); !ok {
			m = measure.NewCached(m, o.cacheCapacity)
		}
	}
	return &Wrapper{m: m, opts: o}
}

// WrapText wraps text with a default Wrapper over m.
// See Wrapper.Wrap.
func WrapText(text string, maxWidth float64, font string, maxLines int, m measure.Measurer) (*Result, error) {
	return New(m).Wrap(text, maxWidth, font, maxLines)
}

// Segmenter returns the segmentation backend of the wrapper.
func (w *Wrapper) Segmenter() segment.Segmenter {
	return w.opts.segmenter
}

// Wrap breaks text into lines no wider than maxWidth under font, keeping
// at most maxLines of them (NoLimit for no limit).
//
// Lines break only at Unicode line break opportunities and never inside a
// grapheme cluster. A run of clusters with no opportunity is kept on one
// line even when it is wider than maxWidth. Mandatory breaks always end a
// line.
//
// Empty text yields no lines. A maxWidth that is not positive fails with
// ErrInvalidWidth before anything is measured; a measurement failure
// fails with a *MeasureError. No lines are returned with an error.
func (w *Wrapper) Wrap(text string, maxWidth float64, font string, maxLines int) (*Result, error) {
	if err := checkMaxWidth(maxWidth); err != nil {
		return nil, err
	}
	if maxLines < NoLimit {
		return nil, ErrInvalidLineLimit
	}

	text = w.normalize(text)
	if text == "" {
		return &Result{Lines: []Line{}}, nil
	}

	a := w.analyze(text)

	calls := 0
	mf := memoize(func(s string) (float64, error) {
		calls++
		return w.m.MeasureWidth(s, font)
	})

	lines, err := Pack(a.Graphemes, a.Breaks, mf, maxWidth)
	if err != nil {
		return nil, withFont(err, font)
	}

	tr := Truncator{
		Policy:   w.opts.policy,
		Marker:   w.opts.marker,
		MaxWidth: maxWidth,
		Measure:  mf,
	}
	res, err := tr.Truncate(lines, maxLines)
	if err != nil {
		return nil, withFont(err, font)
	}

	w.log(a, &res, maxWidth, calls)
	return &res, nil
}

// Analyze returns the grapheme clusters and break classification of text.
// Text is normalized the same way Wrap normalizes it.
func (w *Wrapper) Analyze(text string) Analysis {
	return w.analyze(w.normalize(text))
}

func (w *Wrapper) analyze(text string) Analysis {
	return Analysis{
		Graphemes: segment.Collect(w.opts.segmenter.Graphemes(text)),
		Breaks:    w.opts.segmenter.Breaks(text),
	}
}

// Measure returns every grapheme cluster of text with its width under
// font. Hard line terminators have width 0.
func (w *Wrapper) Measure(text, font string) ([]MeasuredGrapheme, error) {
	text = w.normalize(text)
	mf := memoize(func(s string) (float64, error) {
		return w.m.MeasureWidth(s, font)
	})

	var out []MeasuredGrapheme
	for g := range w.opts.segmenter.Graphemes(text) {
		width, err := measureGrapheme(g.Text, mf)
		if err != nil {
			return nil, withFont(err, font)
		}
		out = append(out, MeasuredGrapheme{Grapheme: g, Width: width})
	}
	return out, nil
}

func (w *Wrapper) normalize(text string) string {
	if !w.opts.collapse {
		return text
	}
	return collapseSpaces(text)
}

func (w *Wrapper) log(a Analysis, res *Result, maxWidth float64, calls int) {
	l := Logger()
	for i, line := range res.Lines {
		if line.Width > maxWidth {
			l.Warn("line overflows width limit",
				"line", i, "width", line.Width, "max_width", maxWidth, "text", line.Text())
		}
	}
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("wrap",
		"segmenter", w.opts.segmenter.Name(),
		"graphemes", len(a.Graphemes),
		"opportunities", len(a.Breaks.Opportunities()),
		"lines", len(res.Lines),
		"measure_calls", calls,
		"truncated", res.Truncated)
}

// withFont records the font on a measurement error.
func withFont(err error, font string) error {
	var me *MeasureError
	if errors.As(err, &me) && me.Font == "" {
		me.Font = font
	}
	return err
}

// collapseSpaces trims surrounding white space and replaces every run of
// two or more U+0020 with a single one.
func collapseSpaces(text string) string {
	text = strings.TrimSpace(text)
	if !strings.Contains(text, "  ") {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' && prevSpace {
			continue
		}
		prevSpace = r == ' '
		sb.WriteRune(r)
	}
	return sb.String()
}
