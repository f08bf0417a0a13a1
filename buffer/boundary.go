package buffer

import "unicode"

// Boundary helpers locate logical line and word edges in a rune slice.
// All of them clamp the incoming offset to [0, len(text)] and never panic.

// LineStart returns the offset just after the nearest '\n' before pos, or 0.
func LineStart(text []rune, pos int) int {
	pos = clamp(pos, 0, len(text))
	for pos > 0 && text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEnd returns the offset of the nearest '\n' at or after pos, or len(text).
func LineEnd(text []rune, pos int) int {
	pos = clamp(pos, 0, len(text))
	for pos < len(text) && text[pos] != '\n' {
		pos++
	}
	return pos
}

// WordStart skips whitespace backward, then non-whitespace backward.
func WordStart(text []rune, pos int) int {
	pos = clamp(pos, 0, len(text))
	for pos > 0 && unicode.IsSpace(text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(text[pos-1]) {
		pos--
	}
	return pos
}

// WordEnd skips non-whitespace forward, then whitespace forward. Swallowing
// the trailing whitespace is deliberate: repeated word-right calls land at
// the start of the next word instead of sticking to word ends.
func WordEnd(text []rune, pos int) int {
	pos = clamp(pos, 0, len(text))
	for pos < len(text) && !unicode.IsSpace(text[pos]) {
		pos++
	}
	for pos < len(text) && unicode.IsSpace(text[pos]) {
		pos++
	}
	return pos
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
