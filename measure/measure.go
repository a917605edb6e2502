package measure

import (
	"errors"
	"math"
	"sync"

	"golang.org/x/image/math/fixed"
)

// Sentinel errors for the measure package.
var (
	// ErrInvalidFont is returned when a font description cannot be parsed.
	ErrInvalidFont = errors.New("measure: invalid font description")

	// ErrFontNotFound is returned when no family of a font description
	// resolves to a registered font.
	ErrFontNotFound = errors.New("measure: font not found")

	// ErrNoWidth is returned by Table for a grapheme it has no width for.
	ErrNoWidth = errors.New("measure: no width for grapheme")

	// ErrBadWidth is returned when a measurer produces a negative, NaN or
	// infinite width.
	ErrBadWidth = errors.New("measure: width must be finite and non-negative")
)

// Measurer reports the rendered width of a string under a font
// description.
//
// Implementations must be deterministic: two calls with the same
// arguments return the same result. The font description is opaque to
// callers of the measurer and is passed through unchanged.
type Measurer interface {
	MeasureWidth(text, font string) (float64, error)
}

// Func adapts an ordinary function to the Measurer interface.
type Func func(text, font string) (float64, error)

// MeasureWidth implements Measurer.
func (f Func) MeasureWidth(text, font string) (float64, error) {
	return f(text, font)
}

// CheckWidth returns ErrBadWidth unless w is a finite, non-negative number.
func CheckWidth(w float64) error {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrBadWidth
	}
	return nil
}

var defaultMeasurer = sync.OnceValue(func() *OpenType { return NewOpenType() })

// Default returns the process-wide OpenType measurer over the Go fonts.
func Default() *OpenType {
	return defaultMeasurer()
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

// floatToFixed converts a float64 size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
