package ui

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/config"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/hub"
	"github.com/sherlog/sherlog/internal/keyseq"
)

const compileCacheThreshold = time.Minute

const welcomeMessage = "Type `:` to start command"

// New creates a Viewer showing engine on screen. The filters listed in
// cfg are handed to the engine right away.
func New(engine *sherlog.Engine, screen Screen, cfg *config.Config, options Options) (*Viewer, error) {
	keymap, err := NewKeymap(cfg.Keymap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to set up key bindings")
	}

	compiler := filter.NewCompiler(compileCacheThreshold)
	v := &Viewer{
		engine:      engine,
		screen:      screen,
		hub:         hub.New(hub.DefaultBufferSize),
		config:      cfg,
		styles:      NewStyles(&cfg.Style),
		keymap:      keymap,
		compiler:    compiler,
		options:     options,
		wrap:        cfg.Wrap,
		lineNumbers: cfg.LineNumbers,
		filters:     NewFilterList(compiler, cfg.CaseMode),
		clearCh:     make(chan uint64, 1),
	}

	v.filters.Load(cfg.Filters)
	v.engine.SetFilters(v.filters.Rules())
	return v, nil
}

// Hub returns the message hub the viewer loop consumes
func (v *Viewer) Hub() *hub.Hub {
	return v.hub
}

// Window returns the lines currently on screen
func (v *Viewer) Window() sherlog.Window {
	return v.window
}

func (v *Viewer) Focus() Focus {
	return v.focus
}

func (v *Viewer) statusDelay() time.Duration {
	return time.Duration(v.config.StatusMsgDelay) * time.Millisecond
}

// Loop runs the viewer until the user quits or ctx is canceled. It
// returns ErrUserQuit or ErrInterrupted respectively, and never
// returns nil.
func (v *Viewer) Loop(ctx context.Context) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Viewer.Loop")
		defer g.End()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.screen.EnableMouse()
	defer v.stopClearTimer()

	v.display(0, false)
	v.info(ctx, welcomeMessage)
	if v.options.Highlight != "" {
		v.highlight(ctx, v.options.Highlight)
	}
	if v.options.Search != "" {
		v.search(ctx, v.options.Search)
	}
	v.draw(nil)

	evCh := v.pollEvents(ctx)
	for {
		select {
		case <-ctx.Done():
			return ErrInterrupted
		case ev, ok := <-evCh:
			if !ok {
				return ErrInterrupted
			}
			v.handleEvent(ctx, ev)
		case r := <-v.hub.PagingCh():
			v.movePage(r.Data())
		case r := <-v.hub.StatusMsgCh():
			v.printStatus(ctx, r.Data())
		case r := <-v.hub.DrawCh():
			v.draw(r.Data())
		case gen := <-v.clearCh:
			if v.clearStatus(gen) {
				v.draw(&hub.DrawOptions{StatusOnly: true})
			}
		}

		if v.quit {
			return ErrUserQuit
		}
	}
}

// pollEvents forwards screen events to the returned channel until the
// screen is finalized or ctx is canceled
func (v *Viewer) pollEvents(ctx context.Context) <-chan tcell.Event {
	evCh := make(chan tcell.Event)
	go func() {
		defer close(evCh)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case evCh <- ev:
			}
		}
	}()
	return evCh
}

func (v *Viewer) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ctx, keyseq.FromEvent(ev))
	case *tcell.EventMouse:
		v.handleMouse(ctx, ev.Buttons(), ev.Modifiers())
	case *tcell.EventResize:
		v.handleResize()
	}
}

func (v *Viewer) handleKey(ctx context.Context, key keyseq.Key) {
	if pdebug.Enabled {
		pdebug.Printf("Viewer.handleKey %s (focus=%d)", key, v.focus)
	}

	// C-c quits from anywhere, and cannot be rebound
	if key.Modifier == keyseq.ModNone && key.Key == tcell.KeyCtrlC {
		v.quit = true
		return
	}

	switch v.focus {
	case FocusPrompt:
		if v.prompt == nil {
			v.focus = FocusGeneral
			return
		}
		switch v.prompt.handleKey(key) {
		case promptSubmit:
			v.submitPrompt(ctx)
		case promptCancel:
			v.cancelPrompt(ctx)
		default:
			v.hub.SendDrawStatus(ctx)
		}
	case FocusFilters:
		if v.filters.handleKey(key) == filterListClose {
			v.closeFilterList(ctx)
			return
		}
		v.hub.SendDrawStatus(ctx)
	default:
		if a := v.keymap.Lookup(key); a != nil {
			a.Execute(ctx, v, key)
		}
	}
}

func (v *Viewer) handleMouse(ctx context.Context, buttons tcell.ButtonMask, mod tcell.ModMask) {
	if v.focus != FocusGeneral {
		return
	}

	step := v.config.MouseScrollStep
	if mod&tcell.ModCtrl != 0 {
		step = v.config.MouseFastScrollStep
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		v.hub.SendPaging(ctx, hub.ScrollLinesRequest(-step))
	case buttons&tcell.WheelDown != 0:
		v.hub.SendPaging(ctx, hub.ScrollLinesRequest(step))
	case buttons&tcell.WheelLeft != 0:
		v.hub.SendPaging(ctx, hub.ScrollColumnsRequest(-step))
	case buttons&tcell.WheelRight != 0:
		v.hub.SendPaging(ctx, hub.ScrollColumnsRequest(step))
	}
}

func (v *Viewer) handleResize() {
	v.refresh()
	v.draw(&hub.DrawOptions{ForceSync: true})
}

func (v *Viewer) firstOrdinal() int {
	if l, ok := v.window.First(); ok {
		return l.Ordinal
	}
	return 0
}

func (v *Viewer) lastOrdinal() int {
	if l, ok := v.window.Last(); ok {
		return l.Ordinal
	}
	return 0
}

// display replaces the window. Going forward, the window starts at the
// first filtered line at or after n. Going in reverse, it ends at the
// last filtered line at or before n, or starts at the top when n is
// closer to the top than one screen.
func (v *Viewer) display(n int, reverse bool) {
	h := v.textHeight()
	switch {
	case !reverse:
		v.window = v.engine.GetLines(n, h)
	case n < h:
		v.window = v.engine.GetLines(0, h)
	default:
		v.window = v.engine.GetLinesRev(n, h)
	}
}

// refresh reads the window again from its first line, picking up
// changes in filters, highlight, or screen size
func (v *Viewer) refresh() {
	v.display(v.firstOrdinal(), false)
	if len(v.window) == 0 {
		v.display(math.MaxInt, true)
	}
}

func (v *Viewer) scrollDown(n int) {
	w := v.engine.GetLines(v.firstOrdinal()+n, v.textHeight())
	if len(w) == 0 {
		return
	}
	v.window = w
}

func (v *Viewer) scrollUp(n int) {
	v.display(max(v.lastOrdinal()-n, 0), true)
}

func (v *Viewer) pageDown() {
	if len(v.window) == 0 {
		return
	}
	w := v.engine.GetLines(v.lastOrdinal()+1, v.textHeight())
	if len(w) == 0 {
		return
	}
	v.window = w
}

func (v *Viewer) pageUp() {
	if len(v.window) == 0 {
		return
	}
	first := v.firstOrdinal()
	if first == 0 {
		return
	}
	v.display(first-1, true)
}

func (v *Viewer) scrollColumns(n int) {
	v.xOffset = max(v.xOffset+n, 0)
}

func (v *Viewer) movePage(req hub.PagingRequest) {
	if pdebug.Enabled {
		g := pdebug.Marker("Viewer.movePage (%s)", req.Type())
		defer g.End()
	}

	switch r := req.(type) {
	case hub.JumpToLineRequest:
		v.display(r.Line(), false)
		if len(v.window) == 0 {
			v.display(math.MaxInt, true)
		}
	case hub.ScrollLinesRequest:
		if r.Lines() < 0 {
			v.scrollUp(-r.Lines())
		} else {
			v.scrollDown(r.Lines())
		}
	case hub.ScrollColumnsRequest:
		v.scrollColumns(r.Columns())
	default:
		switch req.Type() {
		case hub.ToLineAbove:
			v.scrollUp(1)
		case hub.ToLineBelow:
			v.scrollDown(1)
		case hub.ToScrollPageUp:
			v.pageUp()
		case hub.ToScrollPageDown:
			v.pageDown()
		case hub.ToScrollLeft:
			v.scrollColumns(-1)
		case hub.ToScrollRight:
			v.scrollColumns(1)
		case hub.ToScrollFirstItem:
			v.display(0, false)
		case hub.ToScrollLastItem:
			v.display(math.MaxInt, true)
		}
	}
	v.draw(nil)
}

func (v *Viewer) stopClearTimer() {
	if t := v.status.timer; t != nil {
		t.Stop()
		v.status.timer = nil
	}
}

// printStatus shows a message in the status bar. When the message has
// a delay, it is cleared after that delay unless another message
// replaced it first.
func (v *Viewer) printStatus(ctx context.Context, msg hub.StatusMsg) {
	v.stopClearTimer()
	v.status.gen++
	v.status.msg = msg.Message()
	v.status.err = msg.IsError()

	if d := msg.Delay(); d > 0 && !msg.IsError() {
		gen := v.status.gen
		v.status.timer = time.AfterFunc(d, func() {
			select {
			case v.clearCh <- gen:
			case <-ctx.Done():
			}
		})
	}
	v.draw(&hub.DrawOptions{StatusOnly: true})
}

// clearStatus clears the message with the given generation. It
// returns false if a newer message is being shown.
func (v *Viewer) clearStatus(gen uint64) bool {
	if gen != v.status.gen {
		return false
	}
	v.stopClearTimer()
	v.status.msg = ""
	v.status.err = false
	return true
}
