package ui

import (
	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/sherlog/sherlog/query"
)

type promptReaction int

const (
	promptNothing promptReaction = iota
	promptCancel
	promptSubmit
)

// promptEditKeys maps key names to line editing operations. They are
// shared by the status line prompt and the filter list editor.
var promptEditKeys = map[string]func(*query.Editor){
	"BS":         (*query.Editor).Backspace,
	"BS2":        (*query.Editor).Backspace,
	"Delete":     (*query.Editor).Delete,
	"C-d":        (*query.Editor).Delete,
	"ArrowLeft":  func(e *query.Editor) { e.MoveCaret(-1) },
	"C-b":        func(e *query.Editor) { e.MoveCaret(-1) },
	"ArrowRight": func(e *query.Editor) { e.MoveCaret(1) },
	"C-f":        func(e *query.Editor) { e.MoveCaret(1) },
	"Home":       (*query.Editor).Home,
	"C-a":        (*query.Editor).Home,
	"End":        (*query.Editor).End,
	"C-e":        (*query.Editor).End,
	"C-u":        (*query.Editor).KillToStart,
	"C-k":        (*query.Editor).KillToEnd,
}

func (k PromptKind) String() string {
	switch k {
	case PromptCommand:
		return "command"
	case PromptSearch:
		return "search"
	case PromptHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// NewPrompt creates a prompt of the given kind, prefilled with value
func NewPrompt(kind PromptKind, value string) *Prompt {
	return &Prompt{kind: kind, editor: query.New(value)}
}

func (p *Prompt) Kind() PromptKind {
	return p.kind
}

// Header is drawn before the editable text
func (p *Prompt) Header() string {
	if p.kind == PromptCommand {
		return ":"
	}
	return p.kind.String() + ": "
}

func (p *Prompt) Text() string {
	return p.editor.String()
}

// editText applies an editing key to e. It returns false when the key
// is not an editing key.
func editText(e *query.Editor, key keyseq.Key) bool {
	if fn, ok := promptEditKeys[key.String()]; ok {
		fn(e)
		return true
	}
	if key.Key == keyseq.KeyRune && key.Modifier == keyseq.ModNone {
		e.Insert(key.Ch)
		return true
	}
	return false
}

func (p *Prompt) handleKey(key keyseq.Key) promptReaction {
	switch key.String() {
	case "Enter":
		return promptSubmit
	case "Esc":
		return promptCancel
	}
	editText(p.editor, key)
	return promptNothing
}
