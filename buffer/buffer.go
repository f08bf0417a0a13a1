package buffer

import "strings"

// Buffer is one multiline prompt input field: document text, cursor and an
// optional selection, all indexed by rune offset. Visual line layout under
// the current wrap width is derived lazily and cached until the next
// mutation. A Buffer is owned by a single field and is not safe for
// concurrent use; the host processes one event at a time.
type Buffer struct {
	text      []rune
	Cursor    int
	Selection *Selection
	TabSize   int
	WrapWidth int // cells; <= 0 disables soft wrap

	// Vertical navigation session: the column remembered across
	// consecutive MoveUp/MoveDown calls so that crossing a short line and
	// coming back restores the original column. Any edit or other
	// movement ends the session. Kept per buffer, never globally, so
	// multiple fields stay independent.
	navCol    int
	navActive bool

	// Layout cache. version is bumped on every text mutation; the cached
	// starts are reused only while version, wrap width and tab size all
	// still match.
	version       int
	layoutStarts  []int
	layoutVersion int
	layoutWidth   int
	layoutTab     int
}

func NewBuffer(tabSize int) *Buffer {
	if tabSize <= 0 {
		tabSize = 4
	}
	return &Buffer{TabSize: tabSize}
}

func (b *Buffer) Text() string {
	return string(b.text)
}

// Runes exposes the document for rendering. Callers must not modify it.
func (b *Buffer) Runes() []rune {
	return b.text
}

func (b *Buffer) Len() int {
	return len(b.text)
}

// CharBefore returns the rune immediately before the cursor, if any.
func (b *Buffer) CharBefore() (rune, bool) {
	b.clampCursor()
	if b.Cursor == 0 {
		return 0, false
	}
	return b.text[b.Cursor-1], true
}

// SetText replaces the whole document, normalizing CRLF line endings, and
// places the cursor at the end.
func (b *Buffer) SetText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	b.text = []rune(s)
	b.Cursor = len(b.text)
	b.Selection = nil
	b.markEdit()
}

// Reset clears the field.
func (b *Buffer) Reset() {
	b.text = nil
	b.Cursor = 0
	b.Selection = nil
	b.markEdit()
}

// SetCursor moves the cursor to a clamped offset and drops any selection.
func (b *Buffer) SetCursor(pos int) {
	b.Cursor = clamp(pos, 0, len(b.text))
	b.Selection = nil
	b.endVerticalNav()
}

func (b *Buffer) clampCursor() {
	b.Cursor = clamp(b.Cursor, 0, len(b.text))
	if b.Selection != nil {
		if b.Selection.Empty() {
			b.Selection = nil
		} else {
			s := NewSelection(clamp(b.Selection.Start, 0, len(b.text)), clamp(b.Selection.End, 0, len(b.text)))
			if s.Empty() {
				b.Selection = nil
			} else {
				b.Selection = &s
			}
		}
	}
}

// markEdit records a mutation: layout caches go stale and any vertical
// navigation session ends.
func (b *Buffer) markEdit() {
	b.version++
	b.navActive = false
}

func (b *Buffer) endVerticalNav() {
	b.navActive = false
}

// LineStarts returns the visual line starts for the current text, wrap
// width and tab size, recomputing only when one of them changed.
func (b *Buffer) LineStarts() []int {
	if b.layoutStarts != nil && b.layoutVersion == b.version &&
		b.layoutWidth == b.WrapWidth && b.layoutTab == b.TabSize {
		return b.layoutStarts
	}
	b.layoutStarts = LineStarts(b.text, b.WrapWidth, b.TabSize)
	b.layoutVersion = b.version
	b.layoutWidth = b.WrapWidth
	b.layoutTab = b.TabSize
	return b.layoutStarts
}

// VisualLineIndex returns the index of the visual line containing pos.
func (b *Buffer) VisualLineIndex(pos int) int {
	return lineIndexFor(b.LineStarts(), clamp(pos, 0, len(b.text)))
}

// VisualLineStart returns the start offset of the visual line containing pos.
func (b *Buffer) VisualLineStart(pos int) int {
	starts := b.LineStarts()
	return starts[lineIndexFor(starts, clamp(pos, 0, len(b.text)))]
}

// VisualLineEnd returns the last cursor position on the visual line
// containing pos: one before the next line start, or the end of the text
// for the final line.
func (b *Buffer) VisualLineEnd(pos int) int {
	starts := b.LineStarts()
	l := lineIndexFor(starts, clamp(pos, 0, len(b.text)))
	if l == len(starts)-1 {
		return len(b.text)
	}
	return starts[l+1] - 1
}

// --- edit operations ---
// Every operation that meets a non-empty selection consumes it as part of
// the same edit; there is no separate clear step. No operation fails: out
// of range positions clamp and deletes at the buffer edge are no-ops.

// InsertText splices s at the cursor, replacing the selection if one is
// active, and leaves the cursor after the inserted text.
func (b *Buffer) InsertText(s string) {
	b.clampCursor()
	replaced := b.deleteSelectionIfAny()
	if s == "" && !replaced {
		return
	}
	r := []rune(s)
	out := make([]rune, 0, len(b.text)+len(r))
	out = append(out, b.text[:b.Cursor]...)
	out = append(out, r...)
	out = append(out, b.text[b.Cursor:]...)
	b.text = out
	b.Cursor += len(r)
	b.markEdit()
}

func (b *Buffer) InsertRune(ch rune) {
	b.InsertText(string(ch))
}

// Backspace deletes the selection, or one rune before the cursor.
func (b *Buffer) Backspace() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	if b.Cursor > 0 {
		b.deleteRange(b.Cursor-1, b.Cursor)
	}
}

// Delete deletes the selection, or one rune after the cursor.
func (b *Buffer) Delete() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	if b.Cursor < len(b.text) {
		b.deleteRange(b.Cursor, b.Cursor+1)
	}
}

// DeleteWordBackward deletes from the word start before the cursor to the
// cursor. Crossing a line break is fine: the word scan treats '\n' as
// whitespace.
func (b *Buffer) DeleteWordBackward() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	start := WordStart(b.text, b.Cursor)
	if start < b.Cursor {
		b.deleteRange(start, b.Cursor)
	}
}

// DeleteWordForward deletes from the cursor to the end of the word after it.
func (b *Buffer) DeleteWordForward() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	end := WordEnd(b.text, b.Cursor)
	if end > b.Cursor {
		b.deleteRange(b.Cursor, end)
	}
}

// DeleteToLineStart deletes from the start of the cursor's visual line to
// the cursor. When the cursor already sits on the visual line start it
// deletes the single preceding character instead, merging with the previous
// line — intentional policy so repeated kills keep eating upward rather
// than stalling.
func (b *Buffer) DeleteToLineStart() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	start := b.VisualLineStart(b.Cursor)
	if start == b.Cursor {
		if b.Cursor > 0 {
			b.deleteRange(b.Cursor-1, b.Cursor)
		}
		return
	}
	b.deleteRange(start, b.Cursor)
}

// DeleteToLineEnd deletes from the cursor to the end of the logical line.
func (b *Buffer) DeleteToLineEnd() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	end := LineEnd(b.text, b.Cursor)
	if end > b.Cursor {
		b.deleteRange(b.Cursor, end)
	}
}

func (b *Buffer) deleteSelectionIfAny() bool {
	if b.Selection == nil || b.Selection.Empty() {
		b.Selection = nil
		return false
	}
	start := clamp(b.Selection.Start, 0, len(b.text))
	end := clamp(b.Selection.End, 0, len(b.text))
	b.Selection = nil
	if end <= start {
		return false
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.Cursor = start
	b.markEdit()
	return true
}

func (b *Buffer) deleteRange(start, end int) {
	start = clamp(start, 0, len(b.text))
	end = clamp(end, 0, len(b.text))
	if end <= start {
		return
	}
	b.text = append(b.text[:start], b.text[end:]...)
	b.Cursor = start
	b.Selection = nil
	b.markEdit()
}

// SelectedText returns the text covered by the selection, or "".
func (b *Buffer) SelectedText() string {
	if b.Selection == nil || b.Selection.Empty() {
		return ""
	}
	start := clamp(b.Selection.Start, 0, len(b.text))
	end := clamp(b.Selection.End, 0, len(b.text))
	if end <= start {
		return ""
	}
	return string(b.text[start:end])
}

func (b *Buffer) SelectAll() {
	b.endVerticalNav()
	if len(b.text) == 0 {
		b.Selection = nil
		b.Cursor = 0
		return
	}
	s := NewSelection(0, len(b.text))
	b.Selection = &s
	b.Cursor = len(b.text)
}

// --- navigation ---
// Horizontal and jump movements collapse the selection to the movement
// boundary. MoveExtend wraps any movement to grow a selection instead.

func (b *Buffer) MoveLeft() {
	b.endVerticalNav()
	b.clampCursor()
	if b.Selection != nil && !b.Selection.Empty() {
		b.Cursor = b.Selection.Start
		b.Selection = nil
		return
	}
	b.Selection = nil
	if b.Cursor > 0 {
		b.Cursor--
	}
}

func (b *Buffer) MoveRight() {
	b.endVerticalNav()
	b.clampCursor()
	if b.Selection != nil && !b.Selection.Empty() {
		b.Cursor = b.Selection.End
		b.Selection = nil
		return
	}
	b.Selection = nil
	if b.Cursor < len(b.text) {
		b.Cursor++
	}
}

func (b *Buffer) MoveWordLeft() {
	b.endVerticalNav()
	b.clampCursor()
	b.Selection = nil
	b.Cursor = WordStart(b.text, b.Cursor)
}

func (b *Buffer) MoveWordRight() {
	b.endVerticalNav()
	b.clampCursor()
	b.Selection = nil
	b.Cursor = WordEnd(b.text, b.Cursor)
}

func (b *Buffer) MoveLineStart() {
	b.endVerticalNav()
	b.clampCursor()
	b.Selection = nil
	b.Cursor = b.VisualLineStart(b.Cursor)
}

func (b *Buffer) MoveLineEnd() {
	b.endVerticalNav()
	b.clampCursor()
	b.Selection = nil
	b.Cursor = b.VisualLineEnd(b.Cursor)
}

func (b *Buffer) MoveDocStart() {
	b.endVerticalNav()
	b.Selection = nil
	b.Cursor = 0
}

func (b *Buffer) MoveDocEnd() {
	b.endVerticalNav()
	b.Selection = nil
	b.Cursor = len(b.text)
}

// MoveUp moves the cursor one visual line up, keeping the column of the
// line where the vertical session began.
func (b *Buffer) MoveUp() {
	b.clampCursor()
	b.Selection = nil
	starts := b.LineStarts()
	l := lineIndexFor(starts, b.Cursor)
	b.beginVerticalNav(starts, l)
	if l == 0 {
		b.Cursor = 0
		return
	}
	target := starts[l] - 1
	if t := starts[l-1] + b.navCol; t < target {
		target = t
	}
	b.Cursor = clamp(target, 0, len(b.text))
}

// MoveDown is the mirror of MoveUp.
func (b *Buffer) MoveDown() {
	b.clampCursor()
	b.Selection = nil
	starts := b.LineStarts()
	l := lineIndexFor(starts, b.Cursor)
	b.beginVerticalNav(starts, l)
	if l == len(starts)-1 {
		b.Cursor = len(b.text)
		return
	}
	limit := len(b.text)
	if l+2 < len(starts) {
		limit = starts[l+2]
	}
	target := limit - 1
	if t := starts[l+1] + b.navCol; t < target {
		target = t
	}
	b.Cursor = clamp(target, 0, len(b.text))
}

// beginVerticalNav captures the desired column once, when the first
// MoveUp/MoveDown of a session runs. Consecutive vertical moves reuse it;
// everything else resets it via markEdit or endVerticalNav.
func (b *Buffer) beginVerticalNav(starts []int, line int) {
	if b.navActive {
		return
	}
	b.navActive = true
	b.navCol = b.Cursor - starts[line]
}

// MoveExtend runs move while extending the selection from its anchor to the
// new cursor position instead of collapsing it.
func (b *Buffer) MoveExtend(move func()) {
	b.clampCursor()
	anchor := b.Cursor
	if b.Selection != nil && !b.Selection.Empty() {
		if b.Cursor == b.Selection.End {
			anchor = b.Selection.Start
		} else {
			anchor = b.Selection.End
		}
	}
	b.Selection = nil
	move()
	if anchor == b.Cursor {
		b.Selection = nil
		return
	}
	s := NewSelection(anchor, b.Cursor)
	b.Selection = &s
}
