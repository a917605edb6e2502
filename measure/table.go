package measure

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Table measures text from a fixed grapheme → width table. The font
// description is ignored.
//
// A string with an exact entry reports that entry; any other string is
// measured as the sum of its grapheme clusters. Clusters missing from the
// table use the fallback width if one is set and fail with ErrNoWidth
// otherwise.
type Table struct {
	widths      map[string]float64
	fallback    float64
	hasFallback bool
}

// NewTable returns a Table over a copy of widths.
func NewTable(widths map[string]float64) *Table {
	t := &Table{widths: make(map[string]float64, len(widths))}
	for k, v := range widths {
		t.widths[k] = v
	}
	return t
}

// WithFallback returns a copy of the table that measures unknown graphemes
// as w.
func (t *Table) WithFallback(w float64) *Table {
	return &Table{widths: t.widths, fallback: w, hasFallback: true}
}

// MeasureWidth implements Measurer.
func (t *Table) MeasureWidth(text, _ string) (float64, error) {
	if w, ok := t.widths[text]; ok {
		return w, CheckWidth(w)
	}

	var total float64
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w, ok := t.widths[gr.Str()]
		if !ok {
			if !t.hasFallback {
				return 0, fmt.Errorf("%w %q", ErrNoWidth, gr.Str())
			}
			w = t.fallback
		}
		total += w
	}
	return total, CheckWidth(total)
}
