package segment

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"
)

var allBackends = []Segmenter{GoText{}, Uniseg{}}

// corpus is shared by the backend agreement and coverage tests.
var corpus = []string{
	"",
	"a",
	"Hello World !",
	"Hello\nWorld",
	"trailing newline\n",
	"crlf\r\nline",
	"e\u0301te\u0301",
	"日本語のテキスト",
	"😈👿👹👺🤡",
	"👨\u200d👩\u200d👧 family",
	"🇺🇸🇫🇷",
	"😈👿👹👺🤡💩👻💀Hello World !👽👾🤖🎃😺😹😻😼😽👪",
}

func graphemeTexts(gs []Grapheme) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.Text
	}
	return out
}

func TestGraphemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"ascii", "abc", []string{"a", "b", "c"}},
		{"combining mark", "e\u0301x", []string{"e\u0301", "x"}},
		{"zwj family", "👨\u200d👩\u200d👧!", []string{"👨\u200d👩\u200d👧", "!"}},
		{"regional indicators", "🇺🇸🇫🇷", []string{"🇺🇸", "🇫🇷"}},
		{"skin tone", "👋🏽x", []string{"👋🏽", "x"}},
		{"crlf", "a\r\nb", []string{"a", "\r\n", "b"}},
		{"hangul jamo", "\u1100\u1161\u11a8", []string{"\u1100\u1161\u11a8"}},
	}

	for _, backend := range allBackends {
		for _, tt := range tests {
			t.Run(backend.Name()+"/"+tt.name, func(t *testing.T) {
				got := graphemeTexts(Collect(backend.Graphemes(tt.text)))
				if len(got) == 0 {
					got = nil
				}
				if !slices.Equal(got, tt.want) {
					t.Errorf("Graphemes(%q) = %q, want %q", tt.text, got, tt.want)
				}
			})
		}
	}
}

func TestGraphemesCoverText(t *testing.T) {
	for _, backend := range allBackends {
		for _, text := range corpus {
			gs := Collect(backend.Graphemes(text))
			var sb strings.Builder
			pos := 0
			for _, g := range gs {
				if g.Start != pos {
					t.Fatalf("%s: %q: cluster %q starts at %d, want %d", backend.Name(), text, g.Text, g.Start, pos)
				}
				if g.Len() <= 0 || text[g.Start:g.End] != g.Text {
					t.Fatalf("%s: %q: bad cluster %+v", backend.Name(), text, g)
				}
				sb.WriteString(g.Text)
				pos = g.End
			}
			if sb.String() != text {
				t.Errorf("%s: concatenated clusters = %q, want %q", backend.Name(), sb.String(), text)
			}
		}
	}
}

func TestGraphemesRestartable(t *testing.T) {
	seq := Graphemes("ab😈")
	first := Collect(seq)
	second := Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}

	// Stopping early must not panic or yield further values.
	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d clusters, want 1", n)
	}
}

func TestBreaksHelloWorld(t *testing.T) {
	text := "Hello World !"
	for _, backend := range allBackends {
		t.Run(backend.Name(), func(t *testing.T) {
			breaks := backend.Breaks(text)
			if len(breaks) != len(text)+1 {
				t.Fatalf("len(breaks) = %d, want %d", len(breaks), len(text)+1)
			}
			// No break before "!", even after a space (LB13).
			want := []Break{
				{Offset: 6, Kind: BreakAllowed},
				{Offset: 13, Kind: BreakAllowed},
			}
			if got := breaks.Opportunities(); !slices.Equal(got, want) {
				t.Errorf("Opportunities() = %v, want %v", got, want)
			}
			// "ll" must never be separable.
			if k := breaks.KindAt(3); k != BreakNone {
				t.Errorf("KindAt(3) = %v, want None", k)
			}
		})
	}
}

func TestBreaksMandatory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Break
	}{
		{"lf", "ab\ncd", []Break{{3, BreakMandatory}, {5, BreakAllowed}}},
		{"crlf", "ab\r\ncd", []Break{{4, BreakMandatory}, {6, BreakAllowed}}},
		{"trailing lf", "ab\n", []Break{{3, BreakMandatory}}},
		{"paragraph separator", "ab\u2029cd", []Break{{5, BreakMandatory}, {7, BreakAllowed}}},
		{"no break", "abc", []Break{{3, BreakAllowed}}},
	}

	for _, backend := range allBackends {
		for _, tt := range tests {
			t.Run(backend.Name()+"/"+tt.name, func(t *testing.T) {
				got := backend.Breaks(tt.text).Opportunities()
				if !slices.Equal(got, tt.want) {
					t.Errorf("Breaks(%q) = %v, want %v", tt.text, got, tt.want)
				}
			})
		}
	}
}

func TestBreaksInvariants(t *testing.T) {
	for _, backend := range allBackends {
		for _, text := range corpus {
			breaks := backend.Breaks(text)
			if text == "" {
				if len(breaks) != 0 {
					t.Errorf("%s: Breaks(\"\") = %v, want empty", backend.Name(), breaks)
				}
				continue
			}
			if breaks[0].Offset != 0 || breaks[0].Kind != BreakNone {
				t.Errorf("%s: %q: first break = %v, want {0 None}", backend.Name(), text, breaks[0])
			}
			last := breaks[len(breaks)-1]
			if last.Offset != len(text) || last.Kind == BreakNone {
				t.Errorf("%s: %q: last break = %v, want offset %d and at least Allowed", backend.Name(), text, last, len(text))
			}
			for i := 1; i < len(breaks); i++ {
				if breaks[i].Offset <= breaks[i-1].Offset {
					t.Fatalf("%s: %q: offsets not increasing at %d", backend.Name(), text, i)
				}
			}
		}
	}
}

func TestBackendsAgree(t *testing.T) {
	for _, text := range corpus {
		g1 := Collect(GoText{}.Graphemes(text))
		g2 := Collect(Uniseg{}.Graphemes(text))
		if !slices.Equal(g1, g2) {
			t.Errorf("graphemes of %q differ:\ngotext: %q\nuniseg: %q", text, graphemeTexts(g1), graphemeTexts(g2))
		}
		b1 := GoText{}.Breaks(text).Opportunities()
		b2 := Uniseg{}.Breaks(text).Opportunities()
		if !slices.Equal(b1, b2) {
			t.Errorf("breaks of %q differ:\ngotext: %v\nuniseg: %v", text, b1, b2)
		}
	}
}

func TestBreaksBetweenEmoji(t *testing.T) {
	text := "😈👿👹"
	breaks := Scan(text)
	for _, g := range Collect(Graphemes(text)) {
		if k := breaks.KindAt(g.End); k != BreakAllowed {
			t.Errorf("KindAt(%d) after %q = %v, want Allowed", g.End, g.Text, k)
		}
	}
}

func TestKindAtNonBoundary(t *testing.T) {
	breaks := Scan("😈 x")
	// Offsets 1..3 fall inside the 4-byte emoji.
	for off := 1; off < 4; off++ {
		if k := breaks.KindAt(off); k != BreakNone {
			t.Errorf("KindAt(%d) = %v, want None", off, k)
		}
	}
	if k := breaks.KindAt(-1); k != BreakNone {
		t.Errorf("KindAt(-1) = %v, want None", k)
	}
	if k := breaks.KindAt(100); k != BreakNone {
		t.Errorf("KindAt(100) = %v, want None", k)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"gotext", "uniseg", "GoText"} {
		s, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", name, err)
		}
		if s.Name() != strings.ToLower(name) {
			t.Errorf("Lookup(%q).Name() = %q", name, s.Name())
		}
	}

	s, err := Lookup("")
	if err != nil || s.Name() != GoTextName {
		t.Errorf("Lookup(\"\") = %v, %v; want default gotext", s, err)
	}

	if _, err := Lookup("icu"); err == nil {
		t.Error("Lookup(icu) should fail")
	} else if !strings.Contains(err.Error(), "gotext, uniseg") {
		t.Errorf("error should list backends, got %v", err)
	}

	if got := Names(); !slices.Equal(got, []string{"gotext", "uniseg"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestIsHardBreak(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"\n", true},
		{"\r\n", true},
		{"\r", true},
		{"\u2028", true},
		{"\u2029", true},
		{"\u0085", true},
		{" ", false},
		{"a\n", false},
		{"\t", false},
	}
	for _, tt := range tests {
		if got := IsHardBreak(tt.s); got != tt.want {
			t.Errorf("IsHardBreak(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestBreakKindString(t *testing.T) {
	tests := []struct {
		kind BreakKind
		want string
	}{
		{BreakNone, "None"},
		{BreakAllowed, "Allowed"},
		{BreakMandatory, "Mandatory"},
		{BreakKind(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("BreakKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestBreakJSON(t *testing.T) {
	data, err := json.Marshal(Break{Offset: 6, Kind: BreakAllowed})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"offset":6,"kind":"Allowed"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}

	var b Break
	if err := json.Unmarshal([]byte(`{"offset":3,"kind":"mandatory"}`), &b); err != nil {
		t.Fatal(err)
	}
	if b != (Break{Offset: 3, Kind: BreakMandatory}) {
		t.Errorf("decoded %+v", b)
	}
	if err := json.Unmarshal([]byte(`{"kind":"maybe"}`), &b); err == nil {
		t.Error("unknown kind should fail to decode")
	}
}

func BenchmarkScan(b *testing.B) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)
	for _, backend := range allBackends {
		b.Run(backend.Name(), func(b *testing.B) {
			for b.Loop() {
				_ = backend.Breaks(text)
			}
		})
	}
}

func BenchmarkGraphemes(b *testing.B) {
	text := strings.Repeat("😈 Hello e\u0301 ", 50)
	for _, backend := range allBackends {
		b.Run(backend.Name(), func(b *testing.B) {
			for b.Loop() {
				for range backend.Graphemes(text) {
				}
			}
		})
	}
}
