package segment

import (
	"iter"

	"github.com/rivo/uniseg"
)

// UnisegName is the registered name of the rivo/uniseg backend.
const UnisegName = "uniseg"

// Uniseg segments text with github.com/rivo/uniseg. It works directly on
// the string and needs no rune conversion.
type Uniseg struct{}

// Name implements Segmenter.
func (Uniseg) Name() string { return UnisegName }

// Graphemes implements Segmenter.
func (Uniseg) Graphemes(text string) iter.Seq[Grapheme] {
	return func(yield func(Grapheme) bool) {
		gr := uniseg.NewGraphemes(text)
		for gr.Next() {
			start, end := gr.Positions()
			if !yield(Grapheme{Start: start, End: end, Text: gr.Str()}) {
				return
			}
		}
	}
}

// Breaks implements Segmenter.
func (Uniseg) Breaks(text string) Breaks {
	b := newBreaksBuilder(text)

	var (
		seg       string
		mustBreak bool
		offset    int
	)
	rest, state := text, -1
	for len(rest) > 0 {
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		offset += len(seg)
		kind := BreakAllowed
		if mustBreak {
			kind = BreakMandatory
		}
		b.mark(offset, kind)
	}
	return b.finish()
}
