package textbreak

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/textbreak/measure"
	"github.com/gogpu/textbreak/segment"
)

var corpus = []string{
	"Hello World !",
	"The quick brown fox jumps over the lazy dog.",
	"e\u0301te\u0301 a\u0300 la plage, ça va",
	"\U0001F468\u200D\U0001F469\u200D\U0001F467 family \U0001F1EF\U0001F1F5\U0001F1FA\U0001F1F8 flags \U0001F44B\U0001F3FD",
	"日本語のテキストを折り返す。中文也一样。",
	"line one\nline two\r\nline three\u2029end\u2028",
	"supercalifragilisticexpialidocious and more",
	"a-b-c-d e/f (g) [h] 100% $5 \"quoted\" well-known",
	"   leading and trailing   ",
	"\n\n",
	"tab\tseparated\ttext",
	"mixed 한국어 text with عربي words",
	"x",
}

// fakeWidth is a deterministic, varied width per cluster.
func fakeWidth(text, _ string) (float64, error) {
	return float64(len(text)%5 + 1), nil
}

type propCase struct {
	seg      segment.Segmenter
	text     string
	maxWidth float64
}

func propCases() []propCase {
	var cases []propCase
	for _, name := range segment.Names() {
		seg, _ := segment.Lookup(name)
		for _, text := range corpus {
			for _, w := range []float64{1, 4, 7, 12, 30, 1000} {
				cases = append(cases, propCase{seg: seg, text: text, maxWidth: w})
			}
		}
	}
	return cases
}

func (c propCase) String() string {
	return fmt.Sprintf("%s/%q/%v", c.seg.Name(), c.text, c.maxWidth)
}

func (c propCase) wrap(t *testing.T, m measure.Measurer, maxLines int, opts ...Option) *Result {
	t.Helper()
	opts = append([]Option{WithSegmenter(c.seg)}, opts...)
	res, err := New(m, opts...).Wrap(c.text, c.maxWidth, font10, maxLines)
	if err != nil {
		t.Fatalf("%v: Wrap error: %v", c, err)
	}
	return res
}

func TestPropertyGraphemeIntegrity(t *testing.T) {
	for _, c := range propCases() {
		res := c.wrap(t, measure.Func(fakeWidth), NoLimit)

		var sb strings.Builder
		next := 0
		for _, l := range res.Lines {
			if len(l.Graphemes) == 0 {
				t.Errorf("%v: empty line", c)
			}
			for _, g := range l.Graphemes {
				if g.Start != next {
					t.Errorf("%v: grapheme %q starts at %d, want %d", c, g.Text, g.Start, next)
				}
				next = g.End
				sb.WriteString(g.Text)
			}
		}
		if sb.String() != c.text {
			t.Errorf("%v: lines reconstruct %q", c, sb.String())
		}
	}
}

func TestPropertyNoMidClusterSplits(t *testing.T) {
	for _, c := range propCases() {
		clusters := map[int]int{}
		for g := range c.seg.Graphemes(c.text) {
			clusters[g.Start] = g.End
		}
		res := c.wrap(t, measure.Func(fakeWidth), NoLimit)
		for _, l := range res.Lines {
			for _, g := range l.Graphemes {
				if end, ok := clusters[g.Start]; !ok || end != g.End {
					t.Errorf("%v: %q [%d,%d) is not a whole cluster", c, g.Text, g.Start, g.End)
				}
			}
		}
	}
}

func TestPropertyWidthBound(t *testing.T) {
	for _, c := range propCases() {
		breaks := c.seg.Breaks(c.text)
		res := c.wrap(t, measure.Func(fakeWidth), NoLimit)
		for i, l := range res.Lines {
			if l.Width <= c.maxWidth {
				continue
			}
			// An overflowing line has nowhere to break inside it.
			for _, g := range l.Graphemes[:len(l.Graphemes)-1] {
				if breaks.KindAt(g.End) != segment.BreakNone {
					t.Errorf("%v: line %d %q (width %v) overflows but can break at %d",
						c, i, l.Text(), l.Width, g.End)
				}
			}
		}
	}
}

func TestPropertyBreaksAtOpportunities(t *testing.T) {
	for _, c := range propCases() {
		breaks := c.seg.Breaks(c.text)
		res := c.wrap(t, measure.Func(fakeWidth), NoLimit)
		for i, l := range res.Lines {
			kind := breaks.KindAt(l.End())
			if kind == segment.BreakNone {
				t.Errorf("%v: line %d ends at %d, which is not an opportunity", c, i, l.End())
			}
			if l.Mandatory != (kind == segment.BreakMandatory) {
				t.Errorf("%v: line %d Mandatory=%v but boundary is %v", c, i, l.Mandatory, kind)
			}
		}
	}
}

func TestPropertyMandatoryFidelity(t *testing.T) {
	for _, c := range propCases() {
		res := c.wrap(t, measure.Func(fakeWidth), NoLimit)
		ends := map[int]bool{}
		for _, l := range res.Lines {
			ends[l.End()] = true
		}
		for _, b := range c.seg.Breaks(c.text) {
			if b.Kind == segment.BreakMandatory && !ends[b.Offset] {
				t.Errorf("%v: no line ends at mandatory break %d", c, b.Offset)
			}
		}
	}
}

func TestPropertyTruncationCap(t *testing.T) {
	marker := measure.Func(func(text, font string) (float64, error) {
		if text == DefaultEllipsis {
			return 2, nil
		}
		return fakeWidth(text, font)
	})
	for _, c := range propCases() {
		full := c.wrap(t, marker, NoLimit)
		for maxLines := range 5 {
			for _, policy := range []TruncatePolicy{TruncateEllipsis, TruncateHard} {
				res := c.wrap(t, marker, maxLines, WithTruncation(policy))
				if len(res.Lines) > maxLines {
					t.Errorf("%v: %d lines exceed limit %d", c, len(res.Lines), maxLines)
				}
				if res.Truncated != (len(full.Lines) > maxLines) {
					t.Errorf("%v: Truncated=%v with %d untruncated lines and limit %d",
						c, res.Truncated, len(full.Lines), maxLines)
				}

				n := len(res.Lines)
				if policy == TruncateEllipsis && res.Truncated && n > 0 {
					n--
					last := res.Lines[n]
					if last.Ellipsis == nil {
						t.Errorf("%v: truncated last line has no marker", c)
					}
					if last.Width > c.maxWidth && len(last.Graphemes) > 0 {
						t.Errorf("%v: truncated last line %q width %v exceeds %v", c, last.String(), last.Width, c.maxWidth)
					}
					if !strings.HasPrefix(full.Lines[n].Text(), last.Text()) {
						t.Errorf("%v: %q is not a prefix of %q", c, last.Text(), full.Lines[n].Text())
					}
				}
				for i := range n {
					if res.Lines[i].Text() != full.Lines[i].Text() || res.Lines[i].Ellipsis != nil {
						t.Errorf("%v: retained line %d changed", c, i)
					}
				}
			}
		}
	}
}

func TestPropertyMeasureIdempotence(t *testing.T) {
	for _, c := range propCases() {
		m := newCounting(measure.Func(fakeWidth))
		first := c.wrap(t, m, NoLimit)
		for text, n := range m.calls {
			if n != 1 {
				t.Errorf("%v: %q measured %d times", c, text, n)
			}
			if segment.IsHardBreak(text) {
				t.Errorf("%v: line terminator %q was measured", c, text)
			}
		}

		second := c.wrap(t, m, NoLimit)
		if len(first.Lines) != len(second.Lines) {
			t.Fatalf("%v: repeated wrap differs", c)
		}
		for i := range first.Lines {
			if first.Lines[i].Text() != second.Lines[i].Text() || first.Lines[i].Width != second.Lines[i].Width {
				t.Errorf("%v: repeated wrap differs at line %d", c, i)
			}
		}
	}
}
