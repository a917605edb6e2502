package segment

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// Grapheme is an extended grapheme cluster: one user-perceived character.
type Grapheme struct {
	// Start is the byte offset of the cluster in the source text.
	Start int `json:"start" yaml:"start"`
	// End is the byte offset just past the cluster.
	End int `json:"end" yaml:"end"`
	// Text is source[Start:End].
	Text string `json:"text" yaml:"text"`
}

// Len returns the length of the cluster in bytes.
func (g Grapheme) Len() int {
	return g.End - g.Start
}

// BreakKind classifies a codepoint boundary for line breaking.
type BreakKind uint8

const (
	// BreakNone means the line must not be broken here.
	BreakNone BreakKind = iota
	// BreakAllowed means the line may be broken here.
	BreakAllowed
	// BreakMandatory means the line must be broken here.
	BreakMandatory
)

// String returns the string representation of the break kind.
func (k BreakKind) String() string {
	switch k {
	case BreakNone:
		return "None"
	case BreakAllowed:
		return "Allowed"
	case BreakMandatory:
		return "Mandatory"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name.
func (k BreakKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BreakKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none":
		*k = BreakNone
	case "allowed":
		*k = BreakAllowed
	case "mandatory":
		*k = BreakMandatory
	default:
		return fmt.Errorf("segment: unknown break kind %q", text)
	}
	return nil
}

// Break is the classification of the boundary at a byte offset.
type Break struct {
	Offset int       `json:"offset" yaml:"offset"`
	Kind   BreakKind `json:"kind" yaml:"kind"`
}

// Breaks holds the classification of every codepoint boundary of a text,
// offsets 0 through len(text), in increasing order.
//
// Offset 0 is always BreakNone. The end-of-text boundary is BreakMandatory
// when the text ends with a hard line terminator and BreakAllowed otherwise.
type Breaks []Break

// KindAt returns the break kind at a byte offset.
// Offsets that are not codepoint boundaries report BreakNone.
func (b Breaks) KindAt(offset int) BreakKind {
	i := sort.Search(len(b), func(i int) bool { return b[i].Offset >= offset })
	if i < len(b) && b[i].Offset == offset {
		return b[i].Kind
	}
	return BreakNone
}

// Opportunities returns the Allowed and Mandatory entries only.
func (b Breaks) Opportunities() []Break {
	out := make([]Break, 0, len(b)/4+1)
	for _, br := range b {
		if br.Kind != BreakNone {
			out = append(out, br)
		}
	}
	return out
}

// Segmenter splits text into grapheme clusters and classifies line
// break opportunities. Implementations are safe for concurrent use.
type Segmenter interface {
	// Name identifies the backend.
	Name() string

	// Graphemes returns the grapheme clusters of text in order.
	// The sequence is lazy and may be ranged over more than once.
	Graphemes(text string) iter.Seq[Grapheme]

	// Breaks classifies every codepoint boundary of text.
	Breaks(text string) Breaks
}

var backends = map[string]Segmenter{
	GoTextName: GoText{},
	UnisegName: Uniseg{},
}

// Default returns the default backend, go-text/typesetting.
func Default() Segmenter {
	return GoText{}
}

// Lookup returns the backend registered under name.
// An empty name selects the default backend.
func Lookup(name string) (Segmenter, error) {
	if name == "" {
		return Default(), nil
	}
	s, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("segment: unknown segmenter %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Graphemes returns the grapheme clusters of text using the default backend.
func Graphemes(text string) iter.Seq[Grapheme] {
	return Default().Graphemes(text)
}

// Scan classifies the codepoint boundaries of text using the default backend.
func Scan(text string) Breaks {
	return Default().Breaks(text)
}

// Collect materializes a grapheme sequence.
func Collect(seq iter.Seq[Grapheme]) []Grapheme {
	return slices.Collect(seq)
}

// IsHardBreak reports whether s is non-empty and consists only of hard
// line terminators (LF, VT, FF, CR, NEL, LS, PS).
func IsHardBreak(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isHardBreakRune(r) {
			return false
		}
	}
	return true
}

func isHardBreakRune(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// endsWithHardBreak reports whether the last rune of text is a hard
// line terminator.
func endsWithHardBreak(text string) bool {
	if text == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	return isHardBreakRune(last)
}

// breaksBuilder accumulates boundary classifications while a backend
// walks the line segments of a text.
type breaksBuilder struct {
	text   string
	breaks Breaks
}

func newBreaksBuilder(text string) *breaksBuilder {
	b := &breaksBuilder{text: text}
	// One entry per rune boundary plus the end of text.
	b.breaks = make(Breaks, 0, len(text)+1)
	for i := range text {
		b.breaks = append(b.breaks, Break{Offset: i})
	}
	b.breaks = append(b.breaks, Break{Offset: len(text)})
	return b
}

// mark records the kind of the boundary at offset. Offset 0 is never
// marked.
func (b *breaksBuilder) mark(offset int, kind BreakKind) {
	if offset <= 0 {
		return
	}
	i := sort.Search(len(b.breaks), func(i int) bool { return b.breaks[i].Offset >= offset })
	if i < len(b.breaks) && b.breaks[i].Offset == offset {
		b.breaks[i].Kind = kind
	}
}

// finish fixes the end-of-text boundary, which backends report
// inconsistently, and returns the result.
func (b *breaksBuilder) finish() Breaks {
	if b.text == "" {
		return nil
	}
	end := BreakAllowed
	if endsWithHardBreak(b.text) {
		end = BreakMandatory
	}
	b.breaks[len(b.breaks)-1].Kind = end
	return b.breaks
}
