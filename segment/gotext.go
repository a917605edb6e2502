package segment

import (
	"iter"

	"github.com/go-text/typesetting/segmenter"
)

// GoTextName is the registered name of the go-text/typesetting backend.
const GoTextName = "gotext"

// GoText segments text with github.com/go-text/typesetting/segmenter,
// which implements UAX #29 grapheme clusters and UAX #14 line breaking.
//
// The go-text segmenter works on rune slices and reports rune offsets;
// GoText converts them to byte offsets into the original string.
type GoText struct{}

// Name implements Segmenter.
func (GoText) Name() string { return GoTextName }

// Graphemes implements Segmenter.
func (GoText) Graphemes(text string) iter.Seq[Grapheme] {
	return func(yield func(Grapheme) bool) {
		if text == "" {
			return
		}
		runes, offsets := runeOffsets(text)

		var seg segmenter.Segmenter
		seg.Init(runes)
		it := seg.GraphemeIterator()
		for it.Next() {
			g := it.Grapheme()
			start := offsets[g.Offset]
			end := offsets[g.Offset+len(g.Text)]
			if !yield(Grapheme{Start: start, End: end, Text: text[start:end]}) {
				return
			}
		}
	}
}

// Breaks implements Segmenter.
func (GoText) Breaks(text string) Breaks {
	b := newBreaksBuilder(text)
	if text == "" {
		return b.finish()
	}
	runes, offsets := runeOffsets(text)

	var seg segmenter.Segmenter
	seg.Init(runes)
	it := seg.LineIterator()
	for it.Next() {
		line := it.Line()
		kind := BreakAllowed
		if line.IsMandatoryBreak {
			kind = BreakMandatory
		}
		b.mark(offsets[line.Offset+len(line.Text)], kind)
	}
	return b.finish()
}

// runeOffsets decodes text and returns its runes together with the byte
// offset of every rune; offsets[len(runes)] is len(text).
func runeOffsets(text string) ([]rune, []int) {
	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return runes, offsets
}
