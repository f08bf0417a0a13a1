package buffer

// Selection is a normalized range of rune offsets, half-open [Start, End).
// A selection with Start == End is treated as no selection.
type Selection struct {
	Start, End int
}

func NewSelection(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

func (s Selection) Empty() bool {
	return s.Start == s.End
}

func (s Selection) Contains(off int) bool {
	return off >= s.Start && off < s.End
}
