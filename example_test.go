package textbreak_test

import (
	"fmt"

	"github.com/gogpu/textbreak"
	"github.com/gogpu/textbreak/measure"
)

func ExampleWrapText() {
	m := measure.NewTable(map[string]float64{
		"H": 7.22, "e": 5.56, "l": 2.22, "o": 5.56, " ": 2.78,
		"W": 9.44, "r": 3.33, "d": 5.56, "!": 2.78,
	})

	res, err := textbreak.WrapText("Hello World !", 16, "10px sans-serif", 2, m)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, line := range res.Lines {
		fmt.Printf("%q %.2f\n", line.String(), line.Width)
	}
	fmt.Println("truncated:", res.Truncated)
	// Output:
	// "Hello " 22.78
	// "World !" 31.67
	// truncated: false
}

func ExampleNew() {
	w := textbreak.New(measure.Cells{}, textbreak.WithCollapseSpaces(true))

	res, err := w.Wrap("The  quick brown fox jumps over the lazy dog", 10, "", 3)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, line := range res.Lines {
		fmt.Printf("%q\n", line.String())
	}
	fmt.Println("truncated:", res.Truncated)
	// Output:
	// "The quick "
	// "brown fox "
	// "jumps ove…"
	// truncated: true
}

func ExampleWrapper_Analyze() {
	a := textbreak.New(nil).Analyze("Hello World !")

	fmt.Println(len(a.Graphemes), "graphemes")
	for _, b := range a.Breaks.Opportunities() {
		fmt.Println(b.Offset, b.Kind)
	}
	// Output:
	// 13 graphemes
	// 6 Allowed
	// 13 Allowed
}

func ExampleTruncator() {
	m := measure.Cells{}
	cells := func(s string) (float64, error) { return m.MeasureWidth(s, "") }

	a := textbreak.New(m).Analyze("one two three four")
	lines, err := textbreak.Pack(a.Graphemes, a.Breaks, cells, 8)
	if err != nil {
		fmt.Println(err)
		return
	}

	tr := textbreak.Truncator{
		Policy:   textbreak.TruncateEllipsis,
		MaxWidth: 8,
		Measure:  cells,
	}
	res, err := tr.Truncate(lines, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%q of %d lines\n", res.Strings(), len(lines))
	// Output:
	// ["one two…"] of 3 lines
}
