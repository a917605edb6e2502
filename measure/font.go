package measure

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is the slant of a font.
type Style uint8

const (
	// StyleNormal is an upright font.
	StyleNormal Style = iota
	// StyleItalic is an italic or oblique font.
	StyleItalic
)

// String returns the CSS keyword for the style.
func (s Style) String() string {
	if s == StyleItalic {
		return "italic"
	}
	return "normal"
}

// Weight is a CSS font weight between 1 and 1000.
type Weight int

// Common weights.
const (
	WeightLight  Weight = 300
	WeightNormal Weight = 400
	WeightBold   Weight = 700
)

// IsBold reports whether the weight selects a bold face.
func (w Weight) IsBold() bool {
	return w >= 600
}

// Font is a parsed font description.
type Font struct {
	Style  Style
	Weight Weight
	// Size is the font size in CSS pixels.
	Size float64
	// Families lists the font families in order of preference.
	Families []string
}

// String returns the canonical shorthand form of the font, for example
// "italic 700 12px serif".
func (f Font) String() string {
	var sb strings.Builder
	if f.Style != StyleNormal {
		sb.WriteString(f.Style.String())
		sb.WriteByte(' ')
	}
	if f.Weight != WeightNormal {
		sb.WriteString(strconv.Itoa(int(f.Weight)))
		sb.WriteByte(' ')
	}
	sb.WriteString(strconv.FormatFloat(f.Size, 'f', -1, 64))
	sb.WriteString("px ")
	sb.WriteString(strings.Join(f.Families, ", "))
	return sb.String()
}

// absoluteSizes maps CSS absolute-size keywords to pixels.
var absoluteSizes = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// ignoredKeywords are valid shorthand keywords that do not affect
// measurement with the available fonts.
var ignoredKeywords = map[string]bool{
	"normal":          true,
	"small-caps":      true,
	"ultra-condensed": true,
	"extra-condensed": true,
	"condensed":       true,
	"semi-condensed":  true,
	"semi-expanded":   true,
	"expanded":        true,
	"extra-expanded":  true,
	"ultra-expanded":  true,
}

// ParseFont parses a subset of the CSS font shorthand:
//
//	[style] [variant] [weight] [stretch] size[/line-height] family[, family]...
//
// Size units px, pt, em and rem are supported (1em = 1rem = 16px), as are
// the absolute-size keywords. Family names may be quoted.
func ParseFont(desc string) (Font, error) {
	f := Font{Style: StyleNormal, Weight: WeightNormal}
	fields := strings.Fields(desc)

	for i, tok := range fields {
		lower := strings.ToLower(tok)
		if size, ok := parseSize(lower); ok {
			f.Size = size
			f.Families = parseFamilies(strings.Join(fields[i+1:], " "))
			if len(f.Families) == 0 {
				return Font{}, fmt.Errorf("%w %q: missing family", ErrInvalidFont, desc)
			}
			return f, nil
		}
		switch {
		case lower == "italic" || lower == "oblique":
			f.Style = StyleItalic
		case lower == "bold" || lower == "bolder":
			f.Weight = WeightBold
		case lower == "lighter":
			f.Weight = WeightLight
		case ignoredKeywords[lower]:
		default:
			w, err := strconv.Atoi(lower)
			if err != nil || w < 1 || w > 1000 {
				return Font{}, fmt.Errorf("%w %q: unexpected %q", ErrInvalidFont, desc, tok)
			}
			f.Weight = Weight(w)
		}
	}
	return Font{}, fmt.Errorf("%w %q: missing size", ErrInvalidFont, desc)
}

// parseSize parses a size token such as "10px", "12pt/1.5" or "large".
func parseSize(tok string) (float64, bool) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	if px, ok := absoluteSizes[tok]; ok {
		return px, true
	}

	var scale float64
	switch {
	case strings.HasSuffix(tok, "rem"):
		tok, scale = strings.TrimSuffix(tok, "rem"), 16
	case strings.HasSuffix(tok, "em"):
		tok, scale = strings.TrimSuffix(tok, "em"), 16
	case strings.HasSuffix(tok, "px"):
		tok, scale = strings.TrimSuffix(tok, "px"), 1
	case strings.HasSuffix(tok, "pt"):
		tok, scale = strings.TrimSuffix(tok, "pt"), 4.0/3.0
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

func parseFamilies(list string) []string {
	var families []string
	for name := range strings.SplitSeq(list, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name != "" {
			families = append(families, name)
		}
	}
	return families
}
