package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// printString writes msg at (x, y) without going past maxX, and
// returns the number of columns written. Tabs and control characters
// are not expected here.
func printString(s Screen, x, y, maxX int, msg string, style tcell.Style) int {
	var written int
	for len(msg) > 0 {
		c, w := utf8.DecodeRuneInString(msg)
		if c == utf8.RuneError && w <= 1 {
			c = '?'
		}
		msg = msg[w:]

		rw := runewidth.RuneWidth(c)
		if rw == 0 {
			continue
		}
		if x+written+rw > maxX {
			break
		}
		s.SetContent(x+written, y, c, nil, style)
		written += rw
	}
	return written
}

// fill paints the cells [x, maxX) of row y with spaces
func fill(s Screen, x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// lineWriter lays out the runes of one log line in the text area. It
// expands tabs, skips the columns hidden by the horizontal offset, and
// either clips at the right edge or continues on the next row.
type lineWriter struct {
	screen  Screen
	x0      int // first column of the text
	width   int // number of columns available for the text
	y       int // first row of the line
	maxRows int
	skip    int // columns hidden on the left
	tab     int
	wrap    bool

	col  int // logical column within the line
	cx   int // column within the current row
	rows int
	full bool
}

func (w *lineWriter) writeString(str string, style tcell.Style) {
	for len(str) > 0 && !w.full {
		c, n := utf8.DecodeRuneInString(str)
		str = str[n:]

		switch {
		case c == '\t':
			for range w.tab - w.col%w.tab {
				w.put(' ', 1, style)
			}
			continue
		case c == utf8.RuneError && n <= 1, c < ' ', c == 0x7f:
			c = '?'
		}

		rw := runewidth.RuneWidth(c)
		if rw == 0 {
			continue
		}
		w.put(c, rw, style)
	}
}

func (w *lineWriter) put(c rune, rw int, style tcell.Style) {
	if w.col < w.skip {
		// a wide rune cut by the left edge leaves blanks behind
		for i := w.skip; i < w.col+rw; i++ {
			w.emit(' ', 1, style)
		}
		w.col += rw
		return
	}
	w.emit(c, rw, style)
	w.col += rw
}

func (w *lineWriter) emit(c rune, rw int, style tcell.Style) {
	if w.full {
		return
	}
	if w.cx+rw > w.width {
		if !w.wrap || rw > w.width || w.rows+1 >= w.maxRows {
			w.full = true
			return
		}
		w.rows++
		w.cx = 0
	}
	w.screen.SetContent(w.x0+w.cx, w.y+w.rows, c, nil, style)
	w.cx += rw
}

// Rows returns the number of rows the line occupies
func (w *lineWriter) Rows() int {
	return w.rows + 1
}
