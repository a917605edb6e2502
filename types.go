package textbreak

import (
	"strings"

	"github.com/gogpu/textbreak/segment"
)

// NoLimit disables the line limit.
const NoLimit = -1

// MeasuredGrapheme is a grapheme cluster with its rendered width.
type MeasuredGrapheme struct {
	segment.Grapheme `yaml:",inline"`

	// Width is the rendered width of the cluster, never negative.
	Width float64 `json:"width" yaml:"width"`
}

// Line is one wrapped line.
type Line struct {
	// Graphemes are the clusters on the line, in text order.
	Graphemes []MeasuredGrapheme `json:"graphemes" yaml:"graphemes"`

	// Width is the sum of the grapheme widths plus the ellipsis width.
	// Trailing white space and line terminators are not counted.
	Width float64 `json:"width" yaml:"width"`

	// Mandatory reports that the line was closed by a mandatory break.
	Mandatory bool `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`

	// Ellipsis is the truncation marker appended to the last line of a
	// truncated result, or nil. Its span is empty and sits at End.
	Ellipsis *MeasuredGrapheme `json:"ellipsis,omitempty" yaml:"ellipsis,omitempty"`
}

// Text returns the concatenated grapheme texts, without the ellipsis.
func (l Line) Text() string {
	var sb strings.Builder
	for _, g := range l.Graphemes {
		sb.WriteString(g.Text)
	}
	return sb.String()
}

// String returns the line as it should be displayed: the grapheme texts
// followed by the ellipsis marker, if any.
func (l Line) String() string {
	if l.Ellipsis == nil {
		return l.Text()
	}
	return l.Text() + l.Ellipsis.Text
}

// Start returns the byte offset of the first grapheme.
func (l Line) Start() int {
	if len(l.Graphemes) == 0 {
		if l.Ellipsis != nil {
			return l.Ellipsis.Start
		}
		return 0
	}
	return l.Graphemes[0].Start
}

// End returns the byte offset just past the last grapheme.
func (l Line) End() int {
	if len(l.Graphemes) == 0 {
		return l.Start()
	}
	return l.Graphemes[len(l.Graphemes)-1].End
}

// contentWidth sums the grapheme widths.
func (l Line) contentWidth() float64 {
	return sumWidths(l.Graphemes)
}

func sumWidths(gs []MeasuredGrapheme) float64 {
	var w float64
	for _, g := range gs {
		w += g.Width
	}
	return w
}

// Result is the outcome of wrapping a text.
type Result struct {
	Lines []Line `json:"lines" yaml:"lines"`

	// Truncated reports that the untruncated packing had more lines than
	// the line limit.
	Truncated bool `json:"truncated" yaml:"truncated"`
}

// Strings returns the display string of every line.
func (r *Result) Strings() []string {
	out := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		out[i] = l.String()
	}
	return out
}

// Analysis holds the intermediate segmentation of a text.
type Analysis struct {
	Graphemes []segment.Grapheme `json:"graphemes" yaml:"graphemes"`
	Breaks    segment.Breaks     `json:"breaks" yaml:"breaks"`
}
