package field

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"promptline/buffer"
)

// Field wires key events to one prompt buffer. Dispatch runs each event to
// completion in a fixed priority: host interceptor, Enter disambiguation,
// deletion, navigation, printable insertion. The event source is single
// threaded; no queuing is needed.
type Field struct {
	state *commitCell

	// Interceptor, when set, sees every key first. A host uses this for
	// overlays such as a suggestion menu; returning true consumes the
	// event entirely.
	Interceptor func(ev *tcell.EventKey) bool

	// OnSubmit receives the full buffer text when plain Enter submits.
	// The host decides whether to Reset the field afterwards.
	OnSubmit func(text string)

	// OnChange fires once per accepted event with the committed snapshot.
	OnChange func(text string, cursor int, selectionCollapsed bool)

	// BackslashNewline enables the escaped-newline rule: Enter immediately
	// after a literal backslash deletes the backslash and inserts a real
	// newline instead of submitting.
	BackslashNewline bool
}

func New(buf *buffer.Buffer) *Field {
	if buf == nil {
		buf = buffer.NewBuffer(4)
	}
	return &Field{
		state:            newCommitCell(buf),
		BackslashNewline: true,
	}
}

// Buffer exposes the authoritative buffer, e.g. for the host's renderer to
// set the wrap width and read layout.
func (f *Field) Buffer() *buffer.Buffer {
	return f.state.latest()
}

func (f *Field) Snapshot() Snapshot {
	return f.state.snapshot()
}

// Reset clears the field, keeping configuration.
func (f *Field) Reset() {
	buf := f.state.latest()
	buf.Reset()
	f.changed()
}

// SetText replaces the field content and moves the cursor to the end.
func (f *Field) SetText(text string) {
	buf := f.state.latest()
	buf.SetText(text)
	f.changed()
}

// HandlePaste inserts host-supplied clipboard text, normalizing CRLF.
func (f *Field) HandlePaste(text string) {
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	buf := f.state.latest()
	buf.InsertText(text)
	f.changed()
}

// HandleKey processes one key event to completion. It returns false when
// nothing recognized the event, so the host can pass it further down its
// own handler chain.
func (f *Field) HandleKey(ev *tcell.EventKey) bool {
	if f.Interceptor != nil && f.Interceptor(ev) {
		return true
	}

	intent, ok := Classify(ev)
	if !ok {
		return false
	}

	// Always fetch the latest committed buffer; see commitCell.
	buf := f.state.latest()

	switch intent {
	case IntentSubmit:
		if f.BackslashNewline && f.escapedNewline(buf) {
			buf.Backspace()
			buf.InsertRune('\n')
			f.changed()
			return true
		}
		snap := f.state.commit()
		if f.OnSubmit != nil {
			f.OnSubmit(snap.Text)
		}
		return true

	case IntentNewline:
		buf.InsertRune('\n')
	case IntentInsertRune:
		buf.InsertRune(ev.Rune())

	case IntentDeleteBackward:
		buf.Backspace()
	case IntentDeleteForward:
		buf.Delete()
	case IntentDeleteWordBackward:
		buf.DeleteWordBackward()
	case IntentDeleteWordForward:
		buf.DeleteWordForward()
	case IntentKillToLineStart:
		buf.DeleteToLineStart()
	case IntentKillToLineEnd:
		buf.DeleteToLineEnd()

	case IntentMoveLeft:
		f.move(buf, ev, buf.MoveLeft)
	case IntentMoveRight:
		f.move(buf, ev, buf.MoveRight)
	case IntentMoveWordLeft:
		f.move(buf, ev, buf.MoveWordLeft)
	case IntentMoveWordRight:
		f.move(buf, ev, buf.MoveWordRight)
	case IntentMoveUp:
		f.move(buf, ev, buf.MoveUp)
	case IntentMoveDown:
		f.move(buf, ev, buf.MoveDown)
	case IntentMoveLineStart:
		f.move(buf, ev, buf.MoveLineStart)
	case IntentMoveLineEnd:
		f.move(buf, ev, buf.MoveLineEnd)
	case IntentMoveDocStart:
		f.move(buf, ev, buf.MoveDocStart)
	case IntentMoveDocEnd:
		f.move(buf, ev, buf.MoveDocEnd)

	case IntentSelectAll:
		buf.SelectAll()

	default:
		return false
	}

	f.changed()
	return true
}

func (f *Field) move(buf *buffer.Buffer, ev *tcell.EventKey, op func()) {
	if extendsSelection(ev) {
		buf.MoveExtend(op)
		return
	}
	op()
}

// escapedNewline reports whether Enter should turn into a newline because
// the character immediately before the cursor is a literal backslash.
func (f *Field) escapedNewline(buf *buffer.Buffer) bool {
	if buf.Selection != nil && !buf.Selection.Empty() {
		return false
	}
	r, ok := buf.CharBefore()
	return ok && r == '\\'
}

// changed commits the new state and notifies the host exactly once.
func (f *Field) changed() {
	snap := f.state.commit()
	if f.OnChange != nil {
		f.OnChange(snap.Text, snap.Cursor, snap.SelectionCollapsed)
	}
}
