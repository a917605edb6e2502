// Package segment splits text into grapheme clusters (UAX #29) and
// classifies line break opportunities (UAX #14).
//
// Both passes are pure and independent: they may run in either order, or
// concurrently, over the same text. Results are expressed in byte offsets
// into the original string.
//
//	for g := range segment.Graphemes("👨\u200D👩\u200D👧 ok") {
//	    fmt.Println(g.Start, g.End, g.Text)
//	}
//
//	breaks := segment.Scan("Hello World")
//	breaks.KindAt(6) // BreakAllowed
//
// # Backends
//
// Two interchangeable backends implement [Segmenter]:
//
//   - [GoText] (default) uses github.com/go-text/typesetting/segmenter
//   - [Uniseg] uses github.com/rivo/uniseg
//
// Use [Lookup] to select one by name.
package segment
