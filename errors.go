package textbreak

import (
	"errors"
	"fmt"
)

// Sentinel errors for textbreak.
var (
	// ErrInvalidWidth is returned when the width limit is not a positive
	// number. It is reported before any measurement takes place.
	ErrInvalidWidth = errors.New("textbreak: max width must be positive")

	// ErrInvalidLineLimit is returned when the line limit is below NoLimit.
	ErrInvalidLineLimit = errors.New("textbreak: max lines must be non-negative or NoLimit")

	// ErrMeasurement matches every measurement failure via errors.Is.
	ErrMeasurement = errors.New("textbreak: measurement failed")
)

// MeasureError is returned when the measurer fails for a grapheme or the
// truncation marker. No lines are returned alongside it.
type MeasureError struct {
	// Text is the string that could not be measured.
	Text string
	// Font is the font description it was measured with.
	Font string
	// Err is the measurer's error.
	Err error
}

func (e *MeasureError) Error() string {
	return fmt.Sprintf("textbreak: measure %q with font %q: %v", e.Text, e.Font, e.Err)
}

// Unwrap returns ErrMeasurement and the underlying error.
func (e *MeasureError) Unwrap() []error {
	return []error{ErrMeasurement, e.Err}
}
