package editor

import (
	"strings"

	"promptline/buffer"
	"promptline/clipboardx"
	"promptline/config"
	"promptline/field"

	"github.com/gdamore/tcell/v2"
)

// ConfigReloadEvent carries a reloaded configuration from the fsnotify
// watcher goroutine into the main event loop.
type ConfigReloadEvent struct {
	tcell.EventTime
	Cfg *config.Config
}

// Editor is the host around one prompt field: it owns the screen, the
// transcript of submitted messages, clipboard access and config reload.
// The field itself never draws; everything visual happens here.
type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	field  *field.Field

	transcript  []string
	inputScroll int // first visible visual row of the input box

	// Bracketed paste: the body is collected here until the end marker,
	// then inserted as a single edit. Collecting it ourselves keeps Enter
	// inside a paste a newline instead of a submit.
	pasting  bool
	pasteBuf []rune

	quit bool
}

func New(cfg *config.Config) *Editor {
	f := field.New(buffer.NewBuffer(cfg.TabSize))
	f.BackslashNewline = cfg.BackslashNewline

	e := &Editor{cfg: cfg, field: f}
	f.OnSubmit = func(text string) {
		text = strings.TrimSpace(text)
		f.Reset()
		if text == "" {
			return
		}
		e.transcript = append(e.transcript, text)
	}
	return e
}

func (e *Editor) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnablePaste()
	screen.Clear()
	e.screen = screen

	// Live settings reload; non-fatal when the config dir doesn't exist.
	stopWatch, err := config.Watch(func(cfg *config.Config) {
		ev := &ConfigReloadEvent{Cfg: cfg}
		ev.SetEventNow()
		_ = screen.PostEvent(ev)
	})
	if err == nil {
		defer stopWatch()
	}

	for !e.quit {
		e.draw()

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventPaste:
			if ev.Start() {
				e.pasting = true
				e.pasteBuf = e.pasteBuf[:0]
			}
			if ev.End() {
				e.pasting = false
				e.field.HandlePaste(string(e.pasteBuf))
			}
		case *tcell.EventKey:
			e.handleKey(ev)
		case *ConfigReloadEvent:
			e.applyConfig(ev.Cfg)
		}
	}

	screen.Fini()
	return nil
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	if e.pasting {
		switch ev.Key() {
		case tcell.KeyRune:
			e.pasteBuf = append(e.pasteBuf, ev.Rune())
		case tcell.KeyEnter, tcell.KeyCtrlJ:
			e.pasteBuf = append(e.pasteBuf, '\n')
		case tcell.KeyTab:
			e.pasteBuf = append(e.pasteBuf, '\t')
		}
		return
	}

	// Host-level bindings run before the field sees anything.
	switch ev.Key() {
	case tcell.KeyCtrlC:
		e.quit = true
		return
	case tcell.KeyCtrlV:
		e.field.HandlePaste(clipboardx.Read())
		return
	case tcell.KeyEscape:
		e.field.Buffer().Selection = nil
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModAlt != 0 {
		if text := e.field.Buffer().SelectedText(); text != "" {
			clipboardx.Write(text)
		}
		return
	}

	// Unhandled keys fall off the end of the chain on purpose.
	e.field.HandleKey(ev)
}

func (e *Editor) applyConfig(cfg *config.Config) {
	e.cfg = cfg
	e.field.BackslashNewline = cfg.BackslashNewline
	e.field.Buffer().TabSize = cfg.TabSize
}
