package textbreak

import (
	"errors"
	"math"
	"unicode"

	"github.com/gogpu/textbreak/measure"
	"github.com/gogpu/textbreak/segment"
)

// MeasureFunc reports the rendered width of a string under a font that
// the caller has already bound.
type MeasureFunc func(text string) (float64, error)

// memoize returns a MeasureFunc that calls f at most once per distinct
// string. The result is not safe for concurrent use.
func memoize(f MeasureFunc) MeasureFunc {
	seen := make(map[string]float64)
	return func(text string) (float64, error) {
		if w, ok := seen[text]; ok {
			return w, nil
		}
		w, err := f(text)
		if err != nil {
			return 0, err
		}
		seen[text] = w
		return w, nil
	}
}

// checkMaxWidth validates a width limit.
func checkMaxWidth(maxWidth float64) error {
	if math.IsNaN(maxWidth) || maxWidth <= 0 {
		return ErrInvalidWidth
	}
	return nil
}

// Pack packs grapheme clusters into lines no wider than maxWidth, breaking
// only where breaks reports an opportunity.
//
// Packing is greedy: clusters are appended while the line fits. When a
// cluster does not fit, the line is cut at its last Allowed opportunity
// and the clusters after it move to the next line. A line with no
// opportunity to cut at keeps growing past maxWidth instead; a cluster is
// never split and no line is ever cut at a BreakNone boundary. A Mandatory
// boundary always closes the line.
//
// Trailing white space hangs: it stays on the line it follows but never
// pushes the line past maxWidth and is left out of Line.Width. No-break
// spaces are content.
//
// mf is called at most once per distinct cluster. Hard line
// terminators are given width 0 without being measured. A measurement
// failure aborts packing with a *MeasureError and no lines.
func Pack(graphemes []segment.Grapheme, breaks segment.Breaks, mf MeasureFunc, maxWidth float64) ([]Line, error) {
	if err := checkMaxWidth(maxWidth); err != nil {
		return nil, err
	}

	p := packer{maxWidth: maxWidth}
	mf = memoize(mf)
	for _, g := range graphemes {
		w, err := measureGrapheme(g.Text, mf)
		if err != nil {
			return nil, err
		}
		p.add(MeasuredGrapheme{Grapheme: g, Width: w}, breaks.KindAt(g.End))
	}
	p.flush(false)
	return p.lines, nil
}

// measureGrapheme returns the width of one cluster.
func measureGrapheme(text string, m MeasureFunc) (float64, error) {
	if segment.IsHardBreak(text) {
		return 0, nil
	}
	w, err := m(text)
	if err == nil {
		err = measure.CheckWidth(w)
	}
	if err != nil {
		var me *MeasureError
		if errors.As(err, &me) {
			return 0, err
		}
		return 0, &MeasureError{Text: text, Err: err}
	}
	return w, nil
}

// packer is the state of one greedy pass.
type packer struct {
	maxWidth float64
	lines    []Line

	cur   []MeasuredGrapheme
	width float64
	// cut is the number of leading clusters of cur that end at the last
	// Allowed opportunity, or 0 if cur has none.
	cut int
}

func (p *packer) add(g MeasuredGrapheme, after segment.BreakKind) {
	// White space hangs past the limit; it only counts once content follows.
	if !isHanging(g.Text) && p.width+g.Width > p.maxWidth && p.cut > 0 {
		p.wrap()
	}

	p.cur = append(p.cur, g)
	p.width += g.Width

	switch after {
	case segment.BreakMandatory:
		p.flush(true)
	case segment.BreakAllowed:
		p.cut = len(p.cur)
	}
}

// wrap emits cur up to the last opportunity and carries the rest.
func (p *packer) wrap() {
	carry := p.cur[p.cut:]
	p.emit(p.cur[:p.cut], false)

	p.cur = append([]MeasuredGrapheme(nil), carry...)
	p.width = sumWidths(p.cur)
	p.cut = 0
}

// flush emits the current line, if any, and resets the state.
func (p *packer) flush(mandatory bool) {
	if len(p.cur) > 0 {
		p.emit(p.cur, mandatory)
	}
	p.cur = nil
	p.width = 0
	p.cut = 0
}

func (p *packer) emit(gs []MeasuredGrapheme, mandatory bool) {
	gs = append([]MeasuredGrapheme(nil), gs...)
	p.lines = append(p.lines, Line{
		Graphemes: gs,
		Width:     hangingWidth(gs),
		Mandatory: mandatory,
	})
}

// isHanging reports whether a cluster is white space that may hang past
// the end of a line. Line terminators and no-break spaces do not hang.
func isHanging(cluster string) bool {
	if cluster == "" || segment.IsHardBreak(cluster) {
		return false
	}
	for _, r := range cluster {
		switch r {
		case '\u00a0', '\u2007', '\u202f':
			return false
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// hangingWidth sums the widths of gs without its trailing white space.
func hangingWidth(gs []MeasuredGrapheme) float64 {
	n := len(gs)
	for n > 0 && (isHanging(gs[n-1].Text) || segment.IsHardBreak(gs[n-1].Text)) {
		n--
	}
	return sumWidths(gs[:n])
}
