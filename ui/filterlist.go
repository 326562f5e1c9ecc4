package ui

import (
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/sherlog/sherlog/query"
)

type filterListReaction int

const (
	filterListNothing filterListReaction = iota
	filterListClose
)

// NewFilterList creates an empty filter list. Patterns are compiled
// with c, honoring mode.
func NewFilterList(c *filter.Compiler, mode filter.CaseMode) *FilterList {
	return &FilterList{
		selected: -1,
		editor:   query.New(""),
		compiler: c,
		mode:     mode,
	}
}

func (e *filterEntry) compile(c *filter.Compiler, mode filter.CaseMode) {
	re, err := c.Compile(e.text, mode)
	if err != nil {
		e.re = nil
		return
	}
	e.re = re
}

// Prefix returns the markers drawn before the pattern
func (e *filterEntry) Prefix() string {
	return filter.Notation("", e.negate, e.active)
}

func (e *filterEntry) String() string {
	return filter.Notation(e.text, e.negate, e.active)
}

// Load replaces the entries with the given rules in filter list
// notation
func (fl *FilterList) Load(list []string) {
	fl.entries = fl.entries[:0]
	for _, s := range list {
		expr, negate, active := filter.ParseNotation(s)
		e := &filterEntry{text: expr, negate: negate, active: active}
		e.compile(fl.compiler, fl.mode)
		fl.entries = append(fl.entries, e)
	}
	fl.selected = -1
	if len(fl.entries) > 0 {
		fl.selected = 0
	}
	fl.editing = false
}

// Append adds an active rule at the end of the list
func (fl *FilterList) Append(expr string) {
	e := &filterEntry{text: expr, active: true}
	e.compile(fl.compiler, fl.mode)
	fl.entries = append(fl.entries, e)
}

func (fl *FilterList) Len() int {
	return len(fl.entries)
}

func (fl *FilterList) Selected() int {
	return fl.selected
}

func (fl *FilterList) Editing() bool {
	return fl.editing
}

// Notations returns the entries in filter list notation
func (fl *FilterList) Notations() []string {
	l := make([]string, len(fl.entries))
	for i, e := range fl.entries {
		l[i] = e.String()
	}
	return l
}

// Rules returns a rule for every entry whose pattern compiles
func (fl *FilterList) Rules() []filter.Rule {
	rules := make([]filter.Rule, 0, len(fl.entries))
	for _, e := range fl.entries {
		if e.re == nil {
			continue
		}
		rules = append(rules, filter.Rule{Pattern: e.re, Negate: e.negate, Active: e.active})
	}
	return rules
}

func (fl *FilterList) current() *filterEntry {
	if fl.selected < 0 || fl.selected >= len(fl.entries) {
		return nil
	}
	return fl.entries[fl.selected]
}

func (fl *FilterList) selectNext() {
	switch {
	case fl.selected >= 0:
		fl.selected = min(fl.selected+1, len(fl.entries)-1)
	case len(fl.entries) > 0:
		fl.selected = 0
	}
}

func (fl *FilterList) selectPrev() {
	switch {
	case fl.selected >= 0:
		fl.selected = max(fl.selected-1, 0)
	case len(fl.entries) > 0:
		fl.selected = len(fl.entries) - 1
	}
}

// insert adds an empty entry at position i, selects it and starts
// editing it
func (fl *FilterList) insert(i int) {
	i = max(0, min(i, len(fl.entries)))
	e := &filterEntry{active: true}
	e.compile(fl.compiler, fl.mode)
	fl.entries = append(fl.entries, nil)
	copy(fl.entries[i+1:], fl.entries[i:])
	fl.entries[i] = e
	fl.selected = i
	fl.startEditing()
}

func (fl *FilterList) startEditing() {
	e := fl.current()
	if e == nil {
		return
	}
	fl.editor.Set(e.text)
	fl.editing = true
}

func (fl *FilterList) remove() {
	if fl.current() == nil {
		return
	}
	fl.entries = append(fl.entries[:fl.selected], fl.entries[fl.selected+1:]...)
	if fl.selected >= len(fl.entries) {
		fl.selected = len(fl.entries) - 1
	}
}

func (fl *FilterList) handleEditKey(key keyseq.Key) {
	switch key.String() {
	case "Enter", "Esc":
		fl.editing = false
		return
	}

	e := fl.current()
	if e == nil {
		fl.editing = false
		return
	}
	if editText(fl.editor, key) {
		e.text = fl.editor.String()
		e.compile(fl.compiler, fl.mode)
	}
}

func (fl *FilterList) handleKey(key keyseq.Key) filterListReaction {
	if fl.editing {
		fl.handleEditKey(key)
		return filterListNothing
	}

	switch key.String() {
	case "Esc", "Enter":
		return filterListClose
	case "ArrowUp", "k":
		fl.selectPrev()
	case "ArrowDown", "j":
		fl.selectNext()
	case "a":
		fl.insert(fl.selected + 1)
	case "i":
		fl.insert(max(fl.selected, 0))
	case "e":
		fl.startEditing()
	case "d":
		if e := fl.current(); e != nil {
			e.active = !e.active
		}
	case "n":
		if e := fl.current(); e != nil {
			e.negate = !e.negate
		}
	case "BS", "BS2", "Delete":
		fl.remove()
	}
	return filterListNothing
}
