package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// OpenType measures text with golang.org/x/image/font/opentype faces.
// Widths are the sum of glyph advances including kerning, at 72 DPI so
// that one point equals one CSS pixel.
//
// OpenType is safe for concurrent use. Parsed fonts and sized faces are
// cached for the lifetime of the measurer.
type OpenType struct {
	hinting font.Hinting

	// mu guards the caches and the faces themselves: an opentype face
	// holds scratch buffers and is not safe for concurrent use.
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
	descs map[string]faceKey
}

// faceKey identifies a sized face of a resolved variant.
type faceKey struct {
	variant
	size float64
}

// NewOpenType creates an OpenType measurer without hinting, which keeps
// advances fractional.
func NewOpenType() *OpenType {
	return &OpenType{
		hinting: font.HintingNone,
		fonts:   make(map[string]*opentype.Font),
		faces:   make(map[faceKey]font.Face),
		descs:   make(map[string]faceKey),
	}
}

// MeasureWidth implements Measurer.
func (m *OpenType) MeasureWidth(text, desc string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(desc)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}
	return fixedToFloat(font.MeasureString(face, text)), nil
}

// face returns the cached face for a font description. Descriptions that
// resolve to the same variant and size share one face. Caller holds m.mu.
func (m *OpenType) face(desc string) (font.Face, error) {
	if k, ok := m.descs[desc]; ok {
		return m.faces[k], nil
	}

	fd, err := ParseFont(desc)
	if err != nil {
		return nil, err
	}
	v, data, err := resolve(fd)
	if err != nil {
		return nil, err
	}
	k := faceKey{variant: v, size: fd.Size}
	if f, ok := m.faces[k]; ok {
		m.descs[desc] = k
		return f, nil
	}

	parsed, ok := m.fonts[v.key()]
	if !ok {
		parsed, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("measure: failed to parse font %s: %w", v.family, err)
		}
		m.fonts[v.key()] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fd.Size,
		DPI:     72,
		Hinting: m.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("measure: failed to create face for %q: %w", desc, err)
	}
	m.faces[k] = face
	m.descs[desc] = k
	return face, nil
}

// Close releases the cached faces.
func (m *OpenType) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for k, f := range m.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.faces, k)
	}
	clear(m.descs)
	return firstErr
}
