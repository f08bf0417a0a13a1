package field

import (
	"sync"

	"promptline/buffer"
)

// Snapshot is the committed view of a field after an event: what the host
// renders and what callbacks receive.
type Snapshot struct {
	Text               string
	Cursor             int
	SelectionCollapsed bool
}

// commitCell separates the engine's authoritative buffer from whatever the
// host last observed. Hosts often render a frame behind, so every event
// must be applied to the buffer held here — never to a snapshot captured by
// an earlier event's closure. Without this, a rapid IME burst (CJK input
// arriving faster than the host's commit cycle) silently loses characters.
type commitCell struct {
	mu   sync.Mutex
	buf  *buffer.Buffer
	snap Snapshot
}

func newCommitCell(buf *buffer.Buffer) *commitCell {
	c := &commitCell{buf: buf}
	c.commit()
	return c
}

// latest returns the buffer carrying the newest committed state.
func (c *commitCell) latest() *buffer.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

// commit records the buffer's current state as the committed snapshot and
// returns it. Called after every accepted event, before callbacks fire.
func (c *commitCell) commit() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	sel := c.buf.Selection
	c.snap = Snapshot{
		Text:               c.buf.Text(),
		Cursor:             c.buf.Cursor,
		SelectionCollapsed: sel == nil || sel.Empty(),
	}
	return c.snap
}

func (c *commitCell) snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}
