// Package textbreak wraps Unicode text into lines that fit a rendered
// width.
//
// # Overview
//
// Wrapping fuses three passes over the text: grapheme cluster segmentation
// (UAX #29), line break opportunity classification (UAX #14) and width
// measurement. Lines break only at opportunities, never inside a grapheme
// cluster, and mandatory breaks always end a line. Results are cut to a
// line limit, optionally with an ellipsis.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/textbreak"
//	    "github.com/gogpu/textbreak/measure"
//	)
//
//	res, err := textbreak.WrapText("Hello World !", 60, "10px sans-serif", 2, measure.Default())
//	if err != nil {
//	    return err
//	}
//	for _, line := range res.Lines {
//	    fmt.Println(line.String(), line.Width)
//	}
//
// # Measurement
//
// Widths come from a [measure.Measurer], which receives each distinct
// grapheme cluster together with the font description. textbreak never
// interprets the font description. Each cluster is measured once per call;
// use [WithCache] to share measurements across calls.
//
// # Overflow
//
// A run of clusters with no break opportunity, such as a long word or a
// single cluster wider than the limit, is never split. It stays on one
// line, whose width then exceeds the limit.
//
// # Truncation
//
// With a line limit, excess lines are dropped and [Result.Truncated] is
// set. Under [TruncateEllipsis], the default, the tail of the last line is
// replaced with a marker ("…") so that it still fits. [TruncateHard] drops
// lines without touching the last one.
//
// # Architecture
//
// The module is organized into:
//   - textbreak: packing, truncation and the Wrapper
//   - segment: grapheme and line break segmentation backends
//   - measure: the Measurer interface and concrete measurers
//   - cache: sharded LRU cache used for shared measurements
package textbreak
