package field

import "github.com/gdamore/tcell/v2"

// Intent is the editing action a key event resolves to.
type Intent int

const (
	IntentNone Intent = iota
	IntentSubmit
	IntentNewline
	IntentDeleteBackward
	IntentDeleteForward
	IntentDeleteWordBackward
	IntentDeleteWordForward
	IntentKillToLineStart
	IntentKillToLineEnd
	IntentMoveLeft
	IntentMoveRight
	IntentMoveWordLeft
	IntentMoveWordRight
	IntentMoveUp
	IntentMoveDown
	IntentMoveLineStart
	IntentMoveLineEnd
	IntentMoveDocStart
	IntentMoveDocEnd
	IntentSelectAll
	IntentInsertRune
)

type binding struct {
	match  func(ev *tcell.EventKey) bool
	intent Intent
}

func key(k tcell.Key) func(*tcell.EventKey) bool {
	return func(ev *tcell.EventKey) bool { return ev.Key() == k }
}

// keyMod matches k with at least one of the given modifiers held.
func keyMod(k tcell.Key, mods tcell.ModMask) func(*tcell.EventKey) bool {
	return func(ev *tcell.EventKey) bool {
		return ev.Key() == k && ev.Modifiers()&mods != 0
	}
}

// altRune matches Alt plus a plain character. Terminals that prefix an
// escape byte instead of reporting a modifier arrive here too; tcell folds
// that encoding into ModAlt.
func altRune(r rune) func(*tcell.EventKey) bool {
	return func(ev *tcell.EventKey) bool {
		return ev.Key() == tcell.KeyRune && ev.Rune() == r && ev.Modifiers()&tcell.ModAlt != 0
	}
}

// printable is the positive fallback rule: any bare rune event without Ctrl
// inserts its character. IME composition arrives as plain rune events
// (often in bursts), so textual input that no binding above claimed
// defaults to insertion instead of being dropped by a deny-list.
func printable(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl == 0
}

// bindings is evaluated in order; the first match wins. Submit/newline
// disambiguation sits before the deletion family, deletion before
// navigation, and the printable fallback last.
var bindings = []binding{
	// Enter family. Plain Enter submits; modified Enter and Ctrl+J insert
	// a newline. The backslash-escaped newline is resolved by the
	// dispatcher because it needs to look at the buffer.
	{keyMod(tcell.KeyEnter, tcell.ModShift | tcell.ModAlt), IntentNewline},
	{key(tcell.KeyCtrlJ), IntentNewline},
	{key(tcell.KeyEnter), IntentSubmit},

	// Deletion family. Plain Ctrl+H arrives as the same code as Backspace
	// and deletes one char. Terminals that encode Ctrl+Backspace as
	// 0x08+Ctrl are indistinguishable from a Ctrl-modified Ctrl+H; that
	// ambiguous event resolves to word-delete, since modern terminals send
	// 0x7f for the plain Backspace key and 0x08 with Ctrl held almost
	// always means Ctrl+Backspace.
	{keyMod(tcell.KeyBackspace, tcell.ModCtrl | tcell.ModAlt), IntentDeleteWordBackward},
	{keyMod(tcell.KeyBackspace2, tcell.ModCtrl | tcell.ModAlt), IntentDeleteWordBackward},
	{key(tcell.KeyBackspace), IntentDeleteBackward},
	{key(tcell.KeyBackspace2), IntentDeleteBackward},
	{keyMod(tcell.KeyDelete, tcell.ModCtrl | tcell.ModAlt), IntentDeleteWordForward},
	{key(tcell.KeyDelete), IntentDeleteForward},
	{key(tcell.KeyCtrlD), IntentDeleteForward},
	{key(tcell.KeyCtrlW), IntentDeleteWordBackward},
	{altRune('d'), IntentDeleteWordForward},
	{key(tcell.KeyCtrlU), IntentKillToLineStart},
	{key(tcell.KeyCtrlK), IntentKillToLineEnd},

	// Navigation family. Ctrl or Alt with an arrow does word movement.
	{keyMod(tcell.KeyLeft, tcell.ModCtrl | tcell.ModAlt), IntentMoveWordLeft},
	{keyMod(tcell.KeyRight, tcell.ModCtrl | tcell.ModAlt), IntentMoveWordRight},
	{altRune('b'), IntentMoveWordLeft},
	{altRune('f'), IntentMoveWordRight},
	{key(tcell.KeyLeft), IntentMoveLeft},
	{key(tcell.KeyRight), IntentMoveRight},
	{key(tcell.KeyUp), IntentMoveUp},
	{key(tcell.KeyDown), IntentMoveDown},
	{keyMod(tcell.KeyHome, tcell.ModCtrl), IntentMoveDocStart},
	{keyMod(tcell.KeyEnd, tcell.ModCtrl), IntentMoveDocEnd},
	{key(tcell.KeyHome), IntentMoveLineStart},
	{key(tcell.KeyEnd), IntentMoveLineEnd},
	{key(tcell.KeyCtrlA), IntentMoveLineStart},
	{key(tcell.KeyCtrlE), IntentMoveLineEnd},
	{key(tcell.KeyCtrlB), IntentMoveLeft},
	{key(tcell.KeyCtrlF), IntentMoveRight},
	{key(tcell.KeyCtrlP), IntentMoveUp},
	{key(tcell.KeyCtrlN), IntentMoveDown},
	{altRune('a'), IntentSelectAll},

	{printable, IntentInsertRune},
}

// Classify resolves a key event to an editing intent. ok is false when no
// binding matched, so the host can pass the event down its own chain.
func Classify(ev *tcell.EventKey) (Intent, bool) {
	for _, b := range bindings {
		if b.match(ev) {
			return b.intent, true
		}
	}
	return IntentNone, false
}

// extendsSelection reports whether a navigation event should grow the
// selection rather than collapse it.
func extendsSelection(ev *tcell.EventKey) bool {
	return ev.Modifiers()&tcell.ModShift != 0
}
