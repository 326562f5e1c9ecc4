// Package ui is the terminal front end of sherlog. It draws windows of
// the engine's filtered lines and turns keys and mouse events into
// engine queries.
package ui

import (
	"context"
	"regexp"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/config"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/hub"
	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/sherlog/sherlog/query"
)

// Screen is the part of tcell.Screen the viewer draws on. Every
// tcell.Screen satisfies it, including tcell's simulation screen.
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Show()
	Sync()
	Clear()
	PollEvent() tcell.Event
	EnableMouse(...tcell.MouseFlags)
	DisableMouse()
}

// Focus tells which component receives key events
type Focus int

const (
	FocusGeneral Focus = iota
	FocusPrompt
	FocusFilters
)

// PromptKind tells what the text typed at the prompt is used for
type PromptKind int

const (
	PromptCommand PromptKind = iota
	PromptSearch
	PromptHighlight
)

// Action describes an action that can be executed upon receiving user input.
type Action interface {
	Execute(context.Context, *Viewer, keyseq.Key)
}

// ActionFunc is a type of Action that is basically just a callback.
type ActionFunc func(context.Context, *Viewer, keyseq.Key)

// Keymap resolves keys, and sequences of keys, to actions
type Keymap struct {
	seq *keyseq.Keyseq
}

// Styles holds the resolved terminal styles of each part of the screen
type Styles struct {
	Basic          tcell.Style
	Highlight      tcell.Style
	StatusBar      tcell.Style
	Prompt         tcell.Style
	Error          tcell.Style
	LineNumber     tcell.Style
	FilterList     tcell.Style
	FilterSelected tcell.Style
	Disabled       tcell.Style
}

// Options are the settings of a Viewer that do not come from the
// configuration file
type Options struct {
	// Filename is shown in the status bar
	Filename string
	// Search and Highlight are applied before the first draw
	Search    string
	Highlight string
}

// Prompt is the editable part of the status bar
type Prompt struct {
	kind   PromptKind
	editor *query.Editor
}

// FilterList is the list of filter rules being edited in the filter
// overlay. Entries keep the text the user typed; invalid patterns are
// kept but do not take part in filtering.
type FilterList struct {
	entries  []*filterEntry
	selected int
	editing  bool
	editor   *query.Editor
	compiler *filter.Compiler
	mode     filter.CaseMode
}

type filterEntry struct {
	text   string
	negate bool
	active bool
	re     *regexp.Regexp // nil when text does not compile
}

// Viewer owns the engine and the view state. Every mutation of either
// happens on the goroutine running Loop.
type Viewer struct {
	engine   *sherlog.Engine
	screen   Screen
	hub      *hub.Hub
	config   *config.Config
	styles   Styles
	keymap   *Keymap
	compiler *filter.Compiler
	options  Options

	window       sherlog.Window
	xOffset      int
	wrap         bool
	lineNumbers  bool
	focus        Focus
	searchIssued bool
	quit         bool

	prompt  *Prompt
	filters *FilterList
	status  statusLine
	clearCh chan uint64
}

type statusLine struct {
	msg   string
	err   bool
	gen   uint64
	timer *time.Timer
}
