// Package query holds the editable text of the status line prompt and
// the filter list.
package query

import (
	"sync"

	"github.com/mattn/go-runewidth"
)

// Editor is a single line of editable text with a caret. The caret is
// a rune index in the range [0, Len()].
type Editor struct {
	mutex sync.Mutex
	text  []rune
	caret int
}

// New creates an Editor holding s, with the caret after the last rune
func New(s string) *Editor {
	e := &Editor{}
	e.Set(s)
	return e
}

// Set replaces the text and moves the caret to the end
func (e *Editor) Set(s string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.text = []rune(s)
	e.caret = len(e.text)
}

// Reset empties the text
func (e *Editor) Reset() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.text = nil
	e.caret = 0
}

func (e *Editor) String() string {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return string(e.text)
}

// Len returns the number of runes in the text
func (e *Editor) Len() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return len(e.text)
}

// Caret returns the caret position as a rune index
func (e *Editor) Caret() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.caret
}

// CaretColumn returns the display column of the caret, counting wide
// runes as two columns
func (e *Editor) CaretColumn() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return runewidth.StringWidth(string(e.text[:e.caret]))
}

// setCaretNL clamps and sets the caret. The caller must hold the lock.
func (e *Editor) setCaretNL(p int) {
	e.caret = max(0, min(p, len(e.text)))
}

// SetCaret moves the caret to p, clamped to the text
func (e *Editor) SetCaret(p int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.setCaretNL(p)
}

// MoveCaret moves the caret by diff runes
func (e *Editor) MoveCaret(diff int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.setCaretNL(e.caret + diff)
}

// Home moves the caret to the beginning of the text
func (e *Editor) Home() {
	e.SetCaret(0)
}

// End moves the caret past the last rune
func (e *Editor) End() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.caret = len(e.text)
}

// Insert inserts ch at the caret and advances the caret
func (e *Editor) Insert(ch rune) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.caret == len(e.text) {
		e.text = append(e.text, ch)
		e.caret++
		return
	}

	buf := make([]rune, len(e.text)+1)
	copy(buf, e.text[:e.caret])
	buf[e.caret] = ch
	copy(buf[e.caret+1:], e.text[e.caret:])
	e.text = buf
	e.caret++
}

// deleteRangeNL deletes runes in [start, end). The caller must hold
// the lock.
func (e *Editor) deleteRangeNL(start, end int) {
	l := len(e.text)
	start = max(start, 0)
	end = min(end, l)
	if start >= end {
		return
	}

	copy(e.text[start:], e.text[end:])
	e.text = e.text[:l-(end-start)]
	if e.caret > end {
		e.caret -= end - start
	} else if e.caret > start {
		e.caret = start
	}
}

// Backspace deletes the rune before the caret
func (e *Editor) Backspace() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.deleteRangeNL(e.caret-1, e.caret)
}

// Delete deletes the rune under the caret
func (e *Editor) Delete() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.deleteRangeNL(e.caret, e.caret+1)
}

// KillToStart deletes everything before the caret
func (e *Editor) KillToStart() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.deleteRangeNL(0, e.caret)
}

// KillToEnd deletes everything from the caret on
func (e *Editor) KillToEnd() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.deleteRangeNL(e.caret, len(e.text))
}
