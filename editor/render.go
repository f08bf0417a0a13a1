package editor

import (
	"fmt"

	"promptline/buffer"
	"promptline/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const prompt = "> "
const continuation = "  "

func (e *Editor) draw() {
	w, h := e.screen.Size()
	theme := e.cfg.GetTheme()
	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e.screen.SetContent(x, y, ' ', nil, base)
		}
	}

	promptW := len(prompt)
	textW := w - promptW
	if textW < 1 {
		textW = 1
	}

	buf := e.field.Buffer()
	buf.WrapWidth = textW
	starts := buf.LineStarts()
	rows := len(starts)

	boxRows := rows
	if boxRows > e.cfg.MaxInputRows {
		boxRows = e.cfg.MaxInputRows
	}
	if boxRows > h-1 {
		boxRows = h - 1
	}
	if boxRows < 1 {
		boxRows = 1
	}

	statusY := h - 1
	inputY := statusY - boxRows

	cursorRow := buf.VisualLineIndex(buf.Cursor)
	e.inputScroll = scrollTo(cursorRow, e.inputScroll, boxRows, rows)

	e.drawTranscript(w, 0, inputY-1, theme)
	e.drawInput(buf, starts, promptW, inputY, boxRows, theme, base)
	e.drawStatus(statusY, w, buf, theme)

	e.screen.Show()
}

// scrollTo clamps the first visible row so cursorRow stays inside a window
// of height rows over total visual lines.
func scrollTo(cursorRow, scroll, height, total int) int {
	if height <= 0 {
		return 0
	}
	if scroll > total-height {
		scroll = total - height
	}
	if scroll < 0 {
		scroll = 0
	}
	if cursorRow < scroll {
		scroll = cursorRow
	}
	if cursorRow >= scroll+height {
		scroll = cursorRow - height + 1
	}
	return scroll
}

func (e *Editor) drawInput(buf *buffer.Buffer, starts []int, promptW, inputY, boxRows int, theme *config.ColorScheme, base tcell.Style) {
	promptStyle := base.Foreground(theme.Prompt)
	selStyle := base.Background(theme.Selection)
	text := buf.Runes()
	sel := buf.Selection

	for row := e.inputScroll; row < e.inputScroll+boxRows && row < len(starts); row++ {
		y := inputY + (row - e.inputScroll)

		marker := continuation
		if row == 0 {
			marker = prompt
		}
		drawString(e.screen, 0, y, marker, promptStyle)

		start := starts[row]
		end := len(text)
		if row+1 < len(starts) {
			end = starts[row+1]
		}

		col := 0
		for off := start; off < end; off++ {
			r := text[off]
			if r == '\n' {
				break
			}
			wd := buffer.CellWidth(r, col, buf.TabSize)
			style := base
			if sel != nil && sel.Contains(off) {
				style = selStyle
			}
			if r == '\t' {
				for i := 0; i < wd; i++ {
					e.screen.SetContent(promptW+col+i, y, ' ', nil, style)
				}
			} else {
				e.screen.SetContent(promptW+col, y, r, nil, style)
			}
			col += wd
		}
	}

	cursorRow := buf.VisualLineIndex(buf.Cursor)
	if cursorRow >= e.inputScroll && cursorRow < e.inputScroll+boxRows {
		col := cellsBetween(text, starts[cursorRow], buf.Cursor, buf.TabSize)
		e.screen.ShowCursor(promptW+col, inputY+cursorRow-e.inputScroll)
	} else {
		e.screen.HideCursor()
	}
}

// cellsBetween measures the rendered width from a visual line start to an
// offset on that line.
func cellsBetween(text []rune, start, end, tabSize int) int {
	col := 0
	for off := start; off < end && off < len(text); off++ {
		if text[off] == '\n' {
			break
		}
		col += buffer.CellWidth(text[off], col, tabSize)
	}
	return col
}

// drawTranscript renders submitted messages bottom-aligned above the input
// box, wrapped with the same layout rules as the field itself.
func (e *Editor) drawTranscript(w, top, bottom int, theme *config.ColorScheme) {
	if bottom < top {
		return
	}
	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Transcript)

	width := w - 2
	if width < 1 {
		width = 1
	}

	var lines []string
	for _, msg := range e.transcript {
		runes := []rune(msg)
		starts := buffer.LineStarts(runes, width, e.cfg.TabSize)
		for i, s := range starts {
			end := len(runes)
			if i+1 < len(starts) {
				end = starts[i+1]
			}
			seg := runes[s:end]
			for len(seg) > 0 && seg[len(seg)-1] == '\n' {
				seg = seg[:len(seg)-1]
			}
			marker := continuation
			if i == 0 {
				marker = "· "
			}
			lines = append(lines, marker+string(seg))
		}
	}

	avail := bottom - top + 1
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	y := bottom - len(lines) + 1
	for _, line := range lines {
		drawString(e.screen, 0, y, line, style)
		y++
	}
}

func (e *Editor) drawStatus(y, w int, buf *buffer.Buffer, theme *config.ColorScheme) {
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, y, ' ', nil, style)
	}

	row := buf.VisualLineIndex(buf.Cursor)
	col := buf.Cursor - buf.VisualLineStart(buf.Cursor)
	drawString(e.screen, 1, y, fmt.Sprintf("%d:%d", row+1, col+1), style)

	hint := "enter send · shift+enter newline · ctrl+c quit"
	x := w - runewidth.StringWidth(hint) - 1
	if x > 8 {
		drawString(e.screen, x, y, hint, style)
	}
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
