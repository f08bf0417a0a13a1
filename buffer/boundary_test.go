package buffer

import "testing"

func TestWordEndSwallowsTrailingWhitespace(t *testing.T) {
	tests := []struct {
		text string
		pos  int
		want int
	}{
		{"foo bar", 0, 4},
		{"foo   bar", 0, 6},
		{"foo bar", 4, 7},
		{"foo", 0, 3},
		// Starting inside whitespace there is no word to skip; only the
		// whitespace run is consumed.
		{"   foo", 0, 3},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := WordEnd([]rune(tt.text), tt.pos); got != tt.want {
			t.Errorf("WordEnd(%q, %d) = %d, want %d", tt.text, tt.pos, got, tt.want)
		}
	}
}

func TestWordStart(t *testing.T) {
	tests := []struct {
		text string
		pos  int
		want int
	}{
		{"foo bar", 7, 4},
		{"foo bar", 4, 0},
		{"foo   bar", 6, 0},
		{"foo", 2, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		if got := WordStart([]rune(tt.text), tt.pos); got != tt.want {
			t.Errorf("WordStart(%q, %d) = %d, want %d", tt.text, tt.pos, got, tt.want)
		}
	}
}

func TestWordScanCrossesNewlines(t *testing.T) {
	text := []rune("foo\nbar")
	if got := WordEnd(text, 0); got != 4 {
		t.Fatalf("WordEnd across newline = %d, want 4", got)
	}
	if got := WordStart(text, 4); got != 0 {
		t.Fatalf("WordStart across newline = %d, want 0", got)
	}
}

func TestLineStartEnd(t *testing.T) {
	text := []rune("abc\ndef")
	tests := []struct {
		pos        int
		start, end int
	}{
		{0, 0, 3},
		{2, 0, 3},
		{3, 0, 3},
		{4, 4, 7},
		{7, 4, 7},
	}
	for _, tt := range tests {
		if got := LineStart(text, tt.pos); got != tt.start {
			t.Errorf("LineStart(%d) = %d, want %d", tt.pos, got, tt.start)
		}
		if got := LineEnd(text, tt.pos); got != tt.end {
			t.Errorf("LineEnd(%d) = %d, want %d", tt.pos, got, tt.end)
		}
	}
}

func TestBoundaryClampsOutOfRange(t *testing.T) {
	text := []rune("abc")
	if got := LineStart(text, -5); got != 0 {
		t.Fatalf("LineStart(-5) = %d, want 0", got)
	}
	if got := LineEnd(text, 99); got != 3 {
		t.Fatalf("LineEnd(99) = %d, want 3", got)
	}
	if got := WordStart(text, 99); got != 0 {
		t.Fatalf("WordStart(99) = %d, want 0", got)
	}
	if got := WordEnd(text, -1); got != 3 {
		t.Fatalf("WordEnd(-1) = %d, want 3", got)
	}
}
