package ui

import (
	"fmt"
	"strconv"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/mattn/go-runewidth"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/hub"
	"github.com/sherlog/sherlog/text"
)

const (
	overlayMarginX = 5
	overlayTitle   = "Filters"
)

// textHeight returns the number of rows available to log lines. The
// last row of the screen is the status bar.
func (v *Viewer) textHeight() int {
	_, h := v.screen.Size()
	return max(h-1, 1)
}

func (v *Viewer) draw(options *hub.DrawOptions) {
	if pdebug.Enabled {
		g := pdebug.Marker("Viewer.draw")
		defer g.End()
	}

	statusOnly := options != nil && options.StatusOnly
	if !statusOnly {
		v.screen.Clear()
		v.drawText()
	}
	v.screen.HideCursor()
	v.drawStatusBar()
	if v.focus == FocusFilters {
		v.drawFilterList()
	}

	if options != nil && options.ForceSync {
		v.screen.Sync()
		return
	}
	v.screen.Show()
}

// gutterWidth returns the width of the line number column, including
// the separating space, or 0 when line numbers are off
func (v *Viewer) gutterWidth() int {
	last, ok := v.window.Last()
	if !v.lineNumbers || !ok {
		return 0
	}
	return len(strconv.Itoa(last.Ordinal+1)) + 1
}

func (v *Viewer) drawText() {
	width, _ := v.screen.Size()
	height := v.textHeight()
	gutter := v.gutterWidth()

	y := 0
	for _, l := range v.window {
		if y >= height {
			break
		}
		if gutter > 0 {
			num := strconv.Itoa(l.Ordinal + 1)
			printString(v.screen, gutter-1-len(num), y, gutter-1, num, v.styles.LineNumber)
		}
		y += v.drawLine(l, gutter, y, width-gutter, height-y)
	}
}

// drawLine draws one line starting at row y and returns the number of
// rows it used
func (v *Viewer) drawLine(l text.Line, x0, y, width, maxRows int) int {
	w := &lineWriter{
		screen:  v.screen,
		x0:      x0,
		width:   width,
		y:       y,
		maxRows: maxRows,
		tab:     v.config.TabWidth,
		wrap:    v.wrap,
	}
	if !v.wrap {
		w.skip = v.xOffset
	}

	for _, seg := range l.Segments() {
		style := v.styles.Basic
		if seg.Kind == text.Highlight {
			style = v.styles.Highlight
		}
		w.writeString(seg.Text, style)
	}
	return w.Rows()
}

// statusRight renders the position part of the status bar, e.g.
// "[12/3000 filtered] 40/3000 app.log"
func (v *Viewer) statusRight() string {
	var s string
	total := v.engine.LineCount()
	if filter.CountApplied(v.engine.Filters()) > 0 {
		s = fmt.Sprintf("[%d/%d filtered] ", v.engine.FilteredCount(), total)
	}
	if first, ok := v.window.First(); ok {
		s += fmt.Sprintf("%d/%d ", first.Ordinal+1, total)
	}
	return s + v.options.Filename
}

func (v *Viewer) drawStatusBar() {
	width, height := v.screen.Size()
	y := height - 1
	if y < 0 {
		return
	}
	fill(v.screen, 0, y, width, v.styles.StatusBar)

	right := v.statusRight()
	rw := runewidth.StringWidth(right)
	rightX := max(width-rw, 0)

	var x int
	switch {
	case v.focus == FocusPrompt && v.prompt != nil:
		style := v.styles.Prompt
		x = printString(v.screen, 0, y, width, v.prompt.Header(), style)
		printString(v.screen, x, y, width, v.prompt.Text(), style)
		v.screen.ShowCursor(min(x+v.prompt.editor.CaretColumn(), width-1), y)
		return
	case v.status.msg != "":
		style := v.styles.StatusBar
		if v.status.err {
			style = v.styles.Error
		}
		x = printString(v.screen, 0, y, width, v.status.msg, style)
	}

	// the position is dropped rather than overwriting the message
	if x < rightX || x == 0 {
		printString(v.screen, rightX, y, width, right, v.styles.StatusBar)
	}
}

// overlayArea returns the box of the filter list: the lower half of the
// screen, above the status bar
func (v *Viewer) overlayArea() (left, top, right, bottom int) {
	width, height := v.screen.Size()
	left, right = overlayMarginX, width-1-overlayMarginX
	if right-left < 10 {
		left, right = 0, width-1
	}
	top, bottom = height/2, height-2
	if bottom-top < 2 {
		top = 0
	}
	return left, top, right, bottom
}

func (v *Viewer) drawFilterList() {
	left, top, right, bottom := v.overlayArea()
	if right-left < 2 || bottom-top < 2 {
		return
	}
	fl := v.filters
	base := v.styles.FilterList

	for y := top + 1; y < bottom; y++ {
		fill(v.screen, left+1, y, right, base)
	}
	for x := left + 1; x < right; x++ {
		v.screen.SetContent(x, top, '─', nil, base)
		v.screen.SetContent(x, bottom, '─', nil, base)
	}
	for y := top + 1; y < bottom; y++ {
		v.screen.SetContent(left, y, '│', nil, base)
		v.screen.SetContent(right, y, '│', nil, base)
	}
	v.screen.SetContent(left, top, '╭', nil, base)
	v.screen.SetContent(right, top, '╮', nil, base)
	v.screen.SetContent(left, bottom, '╰', nil, base)
	v.screen.SetContent(right, bottom, '╯', nil, base)
	printString(v.screen, left+1, top, right, overlayTitle, base)

	rows := bottom - top - 1
	offset := 0
	if fl.selected >= rows {
		offset = fl.selected - rows + 1
	}

	for i := offset; i < fl.Len() && i-offset < rows; i++ {
		e := fl.entries[i]
		y := top + 1 + i - offset

		style := base
		switch {
		case i == fl.selected:
			style = v.styles.FilterSelected
		case e.re == nil:
			style = v.styles.Disabled
		}
		printString(v.screen, left+1, y, right, e.String(), style)

		if i == fl.selected && fl.editing {
			prefix := runewidth.StringWidth(e.Prefix())
			v.screen.ShowCursor(min(left+1+prefix+fl.editor.CaretColumn(), right-1), y)
		}
	}
}
