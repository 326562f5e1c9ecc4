package sherlog

import (
	"regexp"

	"github.com/lestrrat-go/pdebug"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/line"
	"github.com/sherlog/sherlog/search"
	"github.com/sherlog/sherlog/text"
	"github.com/sherlog/sherlog/window"
)

// New loads text and creates an Engine with no filters, no search and
// no highlight
func New(s string) *Engine {
	if pdebug.Enabled {
		g := pdebug.Marker("sherlog.New (%d bytes)", len(s))
		defer g.End()
	}

	e := &Engine{lines: line.NewStore(s)}
	e.filtered = filter.Build(e.lines, nil)
	e.searchIdx = search.NewIndex()
	return e
}

// LineCount returns the number of lines in the loaded text
func (e *Engine) LineCount() int {
	return e.lines.Len()
}

// FilteredCount returns the number of lines that pass the current filters
func (e *Engine) FilteredCount() int {
	return e.filtered.Len()
}

// Line returns the raw contents of line n
func (e *Engine) Line(n int) (string, bool) {
	return e.lines.At(n)
}

// IsVisible returns true if line n passes the current filters
func (e *Engine) IsVisible(n int) bool {
	return e.filtered.Has(n)
}

// SetFilters replaces the filter rules and rebuilds the filtered index
func (e *Engine) SetFilters(rules []filter.Rule) {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.SetFilters (%d rules)", len(rules))
		defer g.End()
	}

	e.rules = append([]filter.Rule(nil), rules...)
	e.filtered = filter.Build(e.lines, e.rules)
}

// Filters returns a copy of the current filter rules
func (e *Engine) Filters() []filter.Rule {
	return append([]filter.Rule(nil), e.rules...)
}

// SetSearch sets the search pattern and rebuilds the search index. The
// highlight pattern follows the search pattern: a nil pattern clears
// both the search and the highlight.
func (e *Engine) SetSearch(re *regexp.Regexp) {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.SetSearch (%v)", re)
		defer g.End()
	}

	e.search = re
	e.searchIdx = search.Build(e.lines, re)
	e.highlight = re
}

// ClearSearch is the same as SetSearch(nil)
func (e *Engine) ClearSearch() {
	e.SetSearch(nil)
}

// Search returns the current search pattern, or nil
func (e *Engine) Search() *regexp.Regexp {
	return e.search
}

// SearchMatchCount returns the number of matches of the current search
// pattern in the whole text
func (e *Engine) SearchMatchCount() int {
	return e.searchIdx.Count()
}

// SetHighlight sets the pattern used to decorate lines. It replaces a
// highlight that was set by SetSearch, but does not affect the search.
func (e *Engine) SetHighlight(re *regexp.Regexp) {
	if pdebug.Enabled {
		pdebug.Printf("Engine.SetHighlight (%v)", re)
	}
	e.highlight = re
}

// Highlight returns the current highlight pattern, or nil
func (e *Engine) Highlight() *regexp.Regexp {
	return e.highlight
}

// NextSearchResult returns the first line at or after from that matches
// the search pattern and passes the filters
func (e *Engine) NextSearchResult(from int) (int, bool) {
	return e.searchIdx.Next(from, e.filtered)
}

// PrevSearchResult returns the last line at or before from that matches
// the search pattern and passes the filters
func (e *Engine) PrevSearchResult(from int) (int, bool) {
	return e.searchIdx.Prev(from, e.filtered)
}

// GetLines returns at most count filtered lines starting at ordinal
// first. A negative count reads every remaining line.
func (e *Engine) GetLines(first, count int) Window {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.GetLines (%d, %d)", first, count)
		defer g.End()
	}
	return e.resolve(window.Forward(e.filtered, first, count))
}

// GetLinesRev returns at most count filtered lines ending at ordinal
// last. The result is in ascending order.
func (e *Engine) GetLinesRev(last, count int) Window {
	if pdebug.Enabled {
		g := pdebug.Marker("Engine.GetLinesRev (%d, %d)", last, count)
		defer g.End()
	}
	return e.resolve(window.Backward(e.filtered, last, count))
}

func (e *Engine) resolve(ordinals []int) Window {
	w := make(Window, 0, len(ordinals))
	for _, n := range ordinals {
		v, ok := e.lines.At(n)
		if !ok {
			continue
		}
		w = append(w, text.New(n, v, e.highlight))
	}
	return w
}

// Ordinals returns the ordinals of the lines in the window
func (w Window) Ordinals() []int {
	l := make([]int, len(w))
	for i, tl := range w {
		l[i] = tl.Ordinal
	}
	return l
}

// Strings returns the contents of the lines in the window
func (w Window) Strings() []string {
	l := make([]string, len(w))
	for i, tl := range w {
		l[i] = tl.Content
	}
	return l
}

// First returns the first line of the window
func (w Window) First() (text.Line, bool) {
	if len(w) == 0 {
		return text.Line{}, false
	}
	return w[0], true
}

// Last returns the last line of the window
func (w Window) Last() (text.Line, bool) {
	if len(w) == 0 {
		return text.Line{}, false
	}
	return w[len(w)-1], true
}
