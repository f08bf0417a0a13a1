package buffer

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

// CellWidth returns the rendered width of r in terminal cells when drawn at
// visual column col. Tabs advance to the next multiple of tabSize; every
// other rune uses its runewidth.
func CellWidth(r rune, col, tabSize int) int {
	if r == '\t' {
		if tabSize <= 0 {
			tabSize = 4
		}
		return tabSize - col%tabSize
	}
	return runewidth.RuneWidth(r)
}

// LineStarts computes the visual line start offsets of text rendered with
// soft wrap at width cells and tabs expanded to tabSize. The result is
// strictly ascending and always begins with 0. A new start is recorded
// after every hard '\n' and wherever the rendered width since the current
// start would exceed width. Offsets always index the original, unexpanded
// text. width <= 0 disables soft wrapping, leaving only hard breaks.
func LineStarts(text []rune, width, tabSize int) []int {
	starts := make([]int, 1, 1+len(text)/16)
	col := 0
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
			col = 0
			continue
		}
		w := CellWidth(r, col, tabSize)
		// col > 0 guarantees progress even for runes wider than the
		// wrap width, and keeps starts strictly monotonic.
		if width > 0 && col > 0 && col+w > width {
			starts = append(starts, i)
			col = 0
			w = CellWidth(r, 0, tabSize)
		}
		col += w
	}
	return starts
}

// lineIndexFor returns the index of the last visual line whose start is
// <= pos. starts must be ascending and non-empty.
func lineIndexFor(starts []int, pos int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > pos })
	if i == 0 {
		return 0
	}
	return i - 1
}
