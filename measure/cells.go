package measure

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/width"

	"github.com/gogpu/textbreak/internal/emoji"
	"github.com/gogpu/textbreak/segment"
)

// Cells measures text in monospace terminal cells. The font description
// is ignored.
//
// Each grapheme cluster takes two cells if it is an emoji or its base
// character is East Asian Wide or Fullwidth, zero cells if it is a line
// terminator, control or lone combining character, and one cell otherwise.
type Cells struct {
	// AmbiguousWide counts East Asian Ambiguous characters as two cells,
	// as CJK terminals do.
	AmbiguousWide bool
}

// MeasureWidth implements Measurer.
func (c Cells) MeasureWidth(text, _ string) (float64, error) {
	total := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		total += c.clusterCells(gr.Str())
	}
	return float64(total), nil
}

func (c Cells) clusterCells(cluster string) int {
	if segment.IsHardBreak(cluster) {
		return 0
	}
	if emoji.IsEmojiCluster(cluster) {
		return 2
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return c.runeCells(r)
}

func (c Cells) runeCells(r rune) int {
	if unicode.IsControl(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	case width.EastAsianAmbiguous:
		if c.AmbiguousWide {
			return 2
		}
	}
	return 1
}
