// Package mock provides a terminal screen that keeps its contents in
// memory, for testing code that draws on a tcell screen.
package mock

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	ch    rune
	style tcell.Style
}

type Screen struct {
	*Interceptor

	mutex         sync.Mutex
	width         int
	height        int
	cells         []cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	mouse         bool

	pollCh   chan tcell.Event
	doneCh   chan struct{}
	finiOnce sync.Once
}

func NewScreen(width, height int) *Screen {
	s := &Screen{
		Interceptor: NewInterceptor(),
		pollCh:      make(chan tcell.Event),
		doneCh:      make(chan struct{}),
	}
	s.resizeNL(width, height)
	return s
}

func (s *Screen) resizeNL(width, height int) {
	s.width = width
	s.height = height
	s.cells = make([]cell, width*height)
	s.clearNL()
}

func (s *Screen) clearNL() {
	for i := range s.cells {
		s.cells[i] = cell{ch: ' ', style: tcell.StyleDefault}
	}
}

// Resize changes the size of the screen, dropping its contents. It
// does not send a resize event.
func (s *Screen) Resize(width, height int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resizeNL(width, height)
}

func (s *Screen) Init() error {
	s.Record("Init", nil)
	return nil
}

// Fini makes PollEvent return nil
func (s *Screen) Fini() {
	s.Record("Fini", nil)
	s.finiOnce.Do(func() { close(s.doneCh) })
}

func (s *Screen) Size() (int, int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.width, s.height
}

func (s *Screen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = cell{ch: primary, style: style}
}

func (s *Screen) ShowCursor(x, y int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cursorX, s.cursorY, s.cursorVisible = x, y, true
}

func (s *Screen) HideCursor() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cursorVisible = false
}

func (s *Screen) Show() {
	s.Record("Show", nil)
}

func (s *Screen) Sync() {
	s.Record("Sync", nil)
}

func (s *Screen) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.clearNL()
}

func (s *Screen) EnableMouse(...tcell.MouseFlags) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mouse = true
}

func (s *Screen) DisableMouse() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.mouse = false
}

func (s *Screen) MouseEnabled() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.mouse
}

// PollEvent blocks until an event is sent with SendEvent, or returns
// nil once the screen is finalized
func (s *Screen) PollEvent() tcell.Event {
	select {
	case <-s.doneCh:
		return nil
	case ev := <-s.pollCh:
		return ev
	}
}

// SendEvent hands ev to a pending PollEvent call
func (s *Screen) SendEvent(ev tcell.Event) {
	t := time.NewTimer(time.Second)
	defer t.Stop()
	select {
	case <-t.C:
		panic("timed out sending an event")
	case s.pollCh <- ev:
	}
}

// Cell returns the character and style drawn at x, y
func (s *Screen) Cell(x, y int) (rune, tcell.Style) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, tcell.StyleDefault
	}
	c := s.cells[y*s.width+x]
	return c.ch, c.style
}

// Row returns the characters of row y, with trailing blanks removed.
// The placeholder cells following wide characters are skipped.
func (s *Screen) Row(y int) string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		if c.ch == 0 {
			continue
		}
		b.WriteRune(c.ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// Cursor returns the cursor position, and whether it is shown
func (s *Screen) Cursor() (int, int, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.cursorX, s.cursorY, s.cursorVisible
}
