package textbreak

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/textbreak/segment"
)

var errNoMeasure = errors.New("textbreak: truncator has no measure function")

// DefaultEllipsis is the default truncation marker, U+2026.
const DefaultEllipsis = "…"

// TruncatePolicy specifies what happens to the last retained line when a
// result is cut to the line limit.
type TruncatePolicy uint8

const (
	// TruncateEllipsis replaces the tail of the last retained line with a
	// marker, keeping the line within the width limit.
	// This is the default (zero value).
	TruncateEllipsis TruncatePolicy = iota

	// TruncateHard drops the excess lines and leaves the last retained
	// line untouched.
	TruncateHard
)

// String returns the string representation of the policy.
func (p TruncatePolicy) String() string {
	switch p {
	case TruncateEllipsis:
		return "ellipsis"
	case TruncateHard:
		return "hard"
	default:
		return "unknown"
	}
}

// MarshalText encodes the policy by name.
func (p TruncatePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name.
func (p *TruncatePolicy) UnmarshalText(b []byte) error {
	v, err := ParseTruncatePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseTruncatePolicy parses "ellipsis" or "hard". An empty string selects
// TruncateEllipsis.
func ParseTruncatePolicy(s string) (TruncatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ellipsis":
		return TruncateEllipsis, nil
	case "hard":
		return TruncateHard, nil
	default:
		return 0, fmt.Errorf("textbreak: unknown truncation policy %q", s)
	}
}

// Truncate cuts lines to at most maxLines with TruncateHard semantics.
// NoLimit disables the limit. Any other negative maxLines keeps no lines;
// Truncator.Truncate and Wrapper.Wrap reject such limits with
// ErrInvalidLineLimit instead.
func Truncate(lines []Line, maxLines int) Result {
	if maxLines != NoLimit {
		maxLines = max(maxLines, 0)
	}
	if maxLines == NoLimit || len(lines) <= maxLines {
		return Result{Lines: lines}
	}
	return Result{Lines: lines[:maxLines:maxLines], Truncated: true}
}

// Truncator cuts packed lines to a line limit.
type Truncator struct {
	Policy TruncatePolicy

	// Marker is the truncation marker. Empty means DefaultEllipsis.
	Marker string

	// MaxWidth is the width limit the last line must respect after the
	// marker is attached.
	MaxWidth float64

	// Measure measures the marker. Required by TruncateEllipsis.
	Measure MeasureFunc
}

// Truncate returns the first maxLines lines, flagged as truncated if any
// were dropped. maxLines of NoLimit keeps every line.
//
// Under TruncateEllipsis the last retained line loses its trailing white
// space and line terminators, then as many trailing clusters as needed to
// fit the marker within MaxWidth, then any white space exposed by that.
// The marker is attached as Line.Ellipsis. If the marker alone is wider
// than MaxWidth the line holds only the marker.
func (t Truncator) Truncate(lines []Line, maxLines int) (Result, error) {
	if maxLines < NoLimit {
		return Result{}, ErrInvalidLineLimit
	}

	res := Truncate(lines, maxLines)
	if !res.Truncated || len(res.Lines) == 0 || t.Policy == TruncateHard {
		return res, nil
	}
	if t.Policy != TruncateEllipsis {
		return Result{}, fmt.Errorf("textbreak: unknown truncation policy %d", t.Policy)
	}
	if err := checkMaxWidth(t.MaxWidth); err != nil {
		return Result{}, err
	}

	marker := t.Marker
	if marker == "" {
		marker = DefaultEllipsis
	}
	mw, err := t.measureMarker(marker)
	if err != nil {
		return Result{}, err
	}

	kept := make([]Line, len(res.Lines))
	copy(kept, res.Lines)
	last := &kept[len(kept)-1]
	*last = withEllipsis(*last, marker, mw, t.MaxWidth)
	res.Lines = kept
	return res, nil
}

func (t Truncator) measureMarker(marker string) (float64, error) {
	if t.Measure == nil {
		return 0, &MeasureError{Text: marker, Err: errNoMeasure}
	}
	return measureGrapheme(marker, t.Measure)
}

// withEllipsis returns a copy of line ending in the marker.
func withEllipsis(line Line, marker string, markerWidth, maxWidth float64) Line {
	gs := trimTrailingSpace(line.Graphemes)
	for len(gs) > 0 && sumWidths(gs)+markerWidth > maxWidth {
		gs = gs[:len(gs)-1]
	}
	gs = trimTrailingSpace(gs)

	at := line.Start()
	if len(gs) > 0 {
		at = gs[len(gs)-1].End
	}
	out := Line{
		Graphemes: append([]MeasuredGrapheme(nil), gs...),
		Ellipsis: &MeasuredGrapheme{
			Grapheme: segment.Grapheme{Start: at, End: at, Text: marker},
			Width:    markerWidth,
		},
	}
	out.Width = out.contentWidth() + markerWidth
	return out
}

// trimTrailingSpace drops trailing white space and line terminator
// clusters.
func trimTrailingSpace(gs []MeasuredGrapheme) []MeasuredGrapheme {
	for len(gs) > 0 && isSpace(gs[len(gs)-1].Text) {
		gs = gs[:len(gs)-1]
	}
	return gs
}

func isSpace(cluster string) bool {
	return segment.IsHardBreak(cluster) || strings.TrimSpace(cluster) == ""
}
