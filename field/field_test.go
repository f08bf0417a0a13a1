package field

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"promptline/buffer"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func typeString(f *Field, s string) {
	for _, r := range s {
		f.HandleKey(runeKey(r))
	}
}

func TestTypingCommitsLatestState(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	typeString(f, "hello")

	snap := f.Snapshot()
	if snap.Text != "hello" || snap.Cursor != 5 {
		t.Fatalf("snapshot = %+v, want text %q cursor 5", snap, "hello")
	}
}

func TestRapidRuneBurstLosesNothing(t *testing.T) {
	// Composed CJK input arrives as consecutive rune events; each must see
	// the previous one's result even if the host never reads in between.
	f := New(buffer.NewBuffer(4))
	for _, r := range "中文字" {
		f.HandleKey(runeKey(r))
	}

	snap := f.Snapshot()
	if snap.Text != "中文字" {
		t.Fatalf("text = %q, want %q", snap.Text, "中文字")
	}
	if snap.Cursor != 3 {
		t.Fatalf("cursor = %d, want 3 (rune offsets)", snap.Cursor)
	}
}

func TestEnterSubmits(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	var got string
	f.OnSubmit = func(text string) { got = text }

	typeString(f, "hi")
	if !f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone)) {
		t.Fatal("enter should be handled")
	}
	if got != "hi" {
		t.Fatalf("submitted %q, want %q", got, "hi")
	}
	// Submit does not clear on its own; that's the host's call.
	if f.Snapshot().Text != "hi" {
		t.Fatalf("text cleared without a Reset")
	}
}

func TestModifiedEnterInsertsNewline(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	submitted := false
	f.OnSubmit = func(string) { submitted = true }

	typeString(f, "a")
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModShift))
	typeString(f, "b")

	if submitted {
		t.Fatal("shift+enter must not submit")
	}
	if got := f.Snapshot().Text; got != "a\nb" {
		t.Fatalf("text = %q, want %q", got, "a\nb")
	}
}

func TestBackslashEnterEscapesNewline(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	submitted := false
	f.OnSubmit = func(string) { submitted = true }

	typeString(f, `abc\`)
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))

	if submitted {
		t.Fatal("enter after a backslash must not submit")
	}
	if got := f.Snapshot().Text; got != "abc\n" {
		t.Fatalf("text = %q, want %q (backslash replaced by newline)", got, "abc\n")
	}
	if f.Snapshot().Cursor != 4 {
		t.Fatalf("cursor = %d, want 4", f.Snapshot().Cursor)
	}
}

func TestBackslashEnterDisabled(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	f.BackslashNewline = false
	var got string
	f.OnSubmit = func(text string) { got = text }

	typeString(f, `abc\`)
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))

	if got != `abc\` {
		t.Fatalf("submitted %q, want %q", got, `abc\`)
	}
}

func TestInterceptorRunsFirst(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	seen := 0
	f.Interceptor = func(ev *tcell.EventKey) bool {
		seen++
		return ev.Key() == tcell.KeyEnter
	}
	var submitted bool
	f.OnSubmit = func(string) { submitted = true }

	typeString(f, "a")
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))

	if seen != 2 {
		t.Fatalf("interceptor saw %d events, want 2", seen)
	}
	if submitted {
		t.Fatal("consumed enter must not reach submit")
	}
	if got := f.Snapshot().Text; got != "a" {
		t.Fatalf("text = %q, want %q", got, "a")
	}
}

func TestUnmatchedKeyFallsThrough(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	if f.HandleKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)) {
		t.Fatal("F5 should not be handled")
	}
	if f.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should not be handled")
	}
}

func TestOnChangeFiresOncePerEvent(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	calls := 0
	f.OnChange = func(string, int, bool) { calls++ }

	f.HandleKey(runeKey('a'))
	if calls != 1 {
		t.Fatalf("OnChange fired %d times for one event, want 1", calls)
	}

	f.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if calls != 2 {
		t.Fatalf("OnChange fired %d times after two events, want 2", calls)
	}
}

func TestShiftArrowSelectsThenTypingReplaces(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	typeString(f, "abc")

	f.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift))
	f.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift))

	buf := f.Buffer()
	if buf.Selection == nil || buf.Selection.Start != 1 || buf.Selection.End != 3 {
		t.Fatalf("selection = %v, want [1,3)", buf.Selection)
	}
	if snap := f.Snapshot(); snap.SelectionCollapsed {
		t.Fatal("snapshot should report an active selection")
	}

	f.HandleKey(runeKey('X'))
	if got := f.Snapshot().Text; got != "aX" {
		t.Fatalf("text = %q, want %q", got, "aX")
	}
}

func TestSubmitWithActiveSelectionIgnoresBackslashRule(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	var got string
	f.OnSubmit = func(text string) { got = text }

	typeString(f, `ab\`)
	f.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt)) // select all
	f.HandleKey(tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone))

	if got != `ab\` {
		t.Fatalf("submitted %q, want %q", got, `ab\`)
	}
}

func TestHandlePasteNormalizesLineEndings(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	f.HandlePaste("one\r\ntwo\rthree")
	if got := f.Snapshot().Text; got != "one\ntwo\nthree" {
		t.Fatalf("text = %q, want %q", got, "one\ntwo\nthree")
	}
}

func TestResetKeepsConfiguration(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	f.BackslashNewline = false
	typeString(f, "abc")
	f.Reset()

	if got := f.Snapshot(); got.Text != "" || got.Cursor != 0 {
		t.Fatalf("after reset: %+v", got)
	}
	if f.BackslashNewline {
		t.Fatal("reset must not touch configuration")
	}
}

func TestKillBindings(t *testing.T) {
	f := New(buffer.NewBuffer(4))
	typeString(f, "foo bar")

	f.HandleKey(tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModNone))
	if got := f.Snapshot().Text; got != "foo " {
		t.Fatalf("after ctrl+w: %q, want %q", got, "foo ")
	}

	f.HandleKey(tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModNone))
	if got := f.Snapshot().Text; got != "" {
		t.Fatalf("after ctrl+u: %q, want empty", got)
	}
}
