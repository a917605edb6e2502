package measure

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/gogpu/textbreak/segment"
)

// RuneWidth measures text in terminal cells using go-runewidth tables.
// The font description is ignored.
//
// It differs from Cells in how it treats emoji presentation and
// East Asian Ambiguous characters, following the widths most terminal
// emulators use.
type RuneWidth struct {
	cond *runewidth.Condition
}

// NewRuneWidth returns a RuneWidth measurer. When ambiguousWide is set,
// East Asian Ambiguous characters take two cells.
func NewRuneWidth(ambiguousWide bool) *RuneWidth {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = ambiguousWide
	return &RuneWidth{cond: cond}
}

// MeasureWidth implements Measurer.
func (m *RuneWidth) MeasureWidth(text, _ string) (float64, error) {
	total := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		if segment.IsHardBreak(cluster) {
			continue
		}
		total += m.cond.StringWidth(cluster)
	}
	return float64(total), nil
}
