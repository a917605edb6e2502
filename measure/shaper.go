package measure

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Shaper measures text by shaping it with go-text/typesetting's HarfBuzz
// port. Ligatures, kerning and contextual forms are applied, so the width
// of a string may differ from the sum of the widths of its graphemes.
//
// Shaper is safe for concurrent use: parsed fonts are read-only and shared,
// while a fresh font.Face is created for each call and HarfbuzzShaper
// instances are pooled.
type Shaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	fonts map[string]*font.Font
}

// NewShaper creates a Shaper over the registered fonts.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		fonts: make(map[string]*font.Font),
	}
}

// MeasureWidth implements Measurer.
func (s *Shaper) MeasureWidth(text, desc string) (float64, error) {
	fd, err := ParseFont(desc)
	if err != nil {
		return 0, err
	}
	v, data, err := resolve(fd)
	if err != nil {
		return 0, err
	}
	f, err := s.font(v, data)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f),
		Size:      floatToFixed(fd.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	return fixedToFloat(out.Advance), nil
}

// font returns the parsed font for a variant, parsing it on first use.
func (s *Shaper) font(v variant, data []byte) (*font.Font, error) {
	key := v.key()

	s.mu.RLock()
	f, ok := s.fonts[key]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[key]; ok {
		return f, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("measure: failed to parse font %s: %w", v.family, err)
	}
	s.fonts[key] = face.Font
	return face.Font, nil
}

// detectScript returns the script of the first rune that is not
// whitespace, or Latin.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
