package measure

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Built-in family names.
const (
	FamilyGo     = "go"
	FamilyGoMono = "go mono"
)

// genericFamilies maps CSS generic family names to built-in families.
var genericFamilies = map[string]string{
	"sans-serif":    FamilyGo,
	"serif":         FamilyGo,
	"system-ui":     FamilyGo,
	"ui-sans-serif": FamilyGo,
	"ui-serif":      FamilyGo,
	"cursive":       FamilyGo,
	"fantasy":       FamilyGo,
	"monospace":     FamilyGoMono,
	"ui-monospace":  FamilyGoMono,
}

type variant struct {
	family string
	bold   bool
	italic bool
}

// key identifies the variant in measurer caches.
func (v variant) key() string {
	return fmt.Sprintf("%s/%t/%t", v.family, v.bold, v.italic)
}

var registry = struct {
	sync.RWMutex
	fonts map[variant][]byte
}{
	fonts: map[variant][]byte{
		{FamilyGo, false, false}:     goregular.TTF,
		{FamilyGo, true, false}:      gobold.TTF,
		{FamilyGo, false, true}:      goitalic.TTF,
		{FamilyGo, true, true}:       gobolditalic.TTF,
		{FamilyGoMono, false, false}: gomono.TTF,
		{FamilyGoMono, true, false}:  gomonobold.TTF,
		{FamilyGoMono, false, true}:  gomonoitalic.TTF,
		{FamilyGoMono, true, true}:   gomonobolditalic.TTF,
	},
}

// Register makes TrueType/OpenType font data available to the OpenType and
// Shaper measurers under a family name. Family names are case-insensitive.
// Registering the same family, weight and style again replaces the data.
//
// Measurers cache parsed faces; register fonts before measuring with them.
func Register(family string, style Style, weight Weight, data []byte) {
	v := variant{
		family: strings.ToLower(family),
		bold:   weight.IsBold(),
		italic: style == StyleItalic,
	}
	registry.Lock()
	registry.fonts[v] = data
	registry.Unlock()
}

// resolve picks the font data for f: the first family with registered
// data wins. A family without the requested bold/italic variant falls back
// to its regular variant.
func resolve(f Font) (variant, []byte, error) {
	registry.RLock()
	defer registry.RUnlock()

	for _, name := range f.Families {
		family := strings.ToLower(name)
		if generic, ok := genericFamilies[family]; ok {
			family = generic
		}
		want := variant{family: family, bold: f.Weight.IsBold(), italic: f.Style == StyleItalic}
		if data, ok := registry.fonts[want]; ok {
			return want, data, nil
		}
		regular := variant{family: family}
		if data, ok := registry.fonts[regular]; ok {
			return regular, data, nil
		}
	}
	return variant{}, nil, fmt.Errorf("%w: %s", ErrFontNotFound, strings.Join(f.Families, ", "))
}
