// Package measure defines the width-measurement capability consumed by
// textbreak, and provides concrete measurers.
//
// A [Measurer] reports the rendered width of a string under an opaque font
// description. textbreak never inspects the description; the measurers in
// this package interpret it as CSS font shorthand (see [ParseFont]):
//
//	m := measure.NewOpenType()
//	w, err := m.MeasureWidth("Hello", "bold 12px sans-serif")
//
// # Measurers
//
//   - [OpenType]: glyph advances and kerning via golang.org/x/image
//   - [Shaper]: HarfBuzz shaping via github.com/go-text/typesetting
//   - [Cells]: monospace terminal cells via golang.org/x/text/width
//   - [RuneWidth]: terminal cells via github.com/mattn/go-runewidth
//   - [Table]: fixed per-grapheme widths, for tests and tooling
//   - [Cached]: a concurrency-safe read-through cache over any measurer
//
// The Go font family (golang.org/x/image/font/gofont) is built in under
// the names "go" and "go mono"; CSS generic families map onto them.
// Use [Register] to add other fonts.
package measure
