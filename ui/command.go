package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/hub"
)

// patternError extracts the user facing description of a pattern
// compile error
func patternError(err error) string {
	var perr *filter.InvalidPatternError
	if errors.As(err, &perr) {
		return perr.Reason()
	}
	return err.Error()
}

// execCommand runs a command typed at the ':' prompt
func (v *Viewer) execCommand(ctx context.Context, command string) {
	words := strings.Fields(command)
	if len(words) == 0 {
		return
	}
	rest := strings.Join(words[1:], " ")

	switch words[0] {
	case "q", "quit":
		v.quit = true
	case "h", "highlight":
		v.openPrompt(ctx, PromptHighlight, rest)
	case "s", "search":
		v.openPrompt(ctx, PromptSearch, rest)
	case "w", "wrap":
		v.toggleWrap(ctx)
	case "l", "lines":
		v.toggleLineNumbers(ctx)
	case "f", "filter":
		if rest == "" {
			v.openFilterList(ctx)
			return
		}
		v.filters.Append(rest)
		v.applyFilters(ctx)
	case "top":
		v.hub.SendPaging(ctx, hub.ToScrollFirstItem)
	case "bottom":
		v.hub.SendPaging(ctx, hub.ToScrollLastItem)
	default:
		if n, err := strconv.Atoi(words[0]); err == nil && len(words) == 1 && n > 0 {
			v.hub.SendPaging(ctx, hub.JumpToLineRequest(n-1))
			return
		}
		v.hub.SendErrorMsg(ctx, "Unknown command: "+command)
	}
}

func (v *Viewer) info(ctx context.Context, msg string) {
	v.hub.SendStatusMsgAndClear(ctx, msg, v.statusDelay())
}

func (v *Viewer) toggleWrap(ctx context.Context) {
	v.wrap = !v.wrap
	if v.wrap {
		v.info(ctx, "word wrap on")
	} else {
		v.info(ctx, "word wrap off")
	}
	v.hub.SendDraw(ctx, nil)
}

func (v *Viewer) toggleLineNumbers(ctx context.Context) {
	v.lineNumbers = !v.lineNumbers
	if v.lineNumbers {
		v.info(ctx, "line numbers on")
	} else {
		v.info(ctx, "line numbers off")
	}
	v.hub.SendDraw(ctx, nil)
}

func (v *Viewer) openPrompt(ctx context.Context, kind PromptKind, value string) {
	v.prompt = NewPrompt(kind, value)
	v.focus = FocusPrompt
	v.hub.SendDrawStatus(ctx)
}

func (v *Viewer) openFilterList(ctx context.Context) {
	v.focus = FocusFilters
	v.info(ctx, "<a>add  <i>insert  <e>edit  <d>disable (toggle)  <n>negate (toggle)")
	v.hub.SendDraw(ctx, nil)
}

// submitPrompt acts on the text entered at the prompt
func (v *Viewer) submitPrompt(ctx context.Context) {
	p := v.prompt
	v.prompt = nil
	v.focus = FocusGeneral
	if p == nil {
		return
	}

	switch p.Kind() {
	case PromptCommand:
		v.clearStatus(v.status.gen)
		v.execCommand(ctx, p.Text())
	case PromptSearch:
		v.search(ctx, p.Text())
	case PromptHighlight:
		v.highlight(ctx, p.Text())
	}
	v.hub.SendDraw(ctx, nil)
}

func (v *Viewer) cancelPrompt(ctx context.Context) {
	v.prompt = nil
	v.focus = FocusGeneral
	v.clearStatus(v.status.gen)
	v.hub.SendDrawStatus(ctx)
}

// highlight decorates every displayed match of pattern. A blank
// pattern removes the highlight.
func (v *Viewer) highlight(ctx context.Context, pattern string) {
	if strings.TrimSpace(pattern) == "" {
		v.engine.SetHighlight(nil)
		v.clearStatus(v.status.gen)
		v.refresh()
		return
	}

	re, err := v.compiler.Compile(pattern, v.config.CaseMode)
	if err != nil {
		v.hub.SendErrorMsg(ctx, "Invalid pattern: "+patternError(err))
		return
	}
	v.engine.SetHighlight(re)
	v.clearStatus(v.status.gen)
	v.refresh()
}

// search sets the search pattern and shows the first result at or
// below the top of the screen. An empty pattern clears the search.
func (v *Viewer) search(ctx context.Context, pattern string) {
	if pattern == "" {
		v.engine.ClearSearch()
		v.searchIssued = false
		v.info(ctx, "Search cleared")
		v.refresh()
		return
	}

	re, err := v.compiler.Compile(pattern, v.config.CaseMode)
	if err != nil {
		v.hub.SendErrorMsg(ctx, "Invalid search pattern: "+patternError(err))
		return
	}
	v.engine.SetSearch(re)
	v.searchIssued = true

	n, ok := v.engine.NextSearchResult(v.firstOrdinal())
	if !ok {
		v.hub.SendErrorMsg(ctx, "Pattern not found: "+pattern)
		v.refresh()
		return
	}
	v.info(ctx, fmt.Sprintf("%d matches", v.engine.SearchMatchCount()))
	v.hub.SendPaging(ctx, hub.JumpToLineRequest(n))
}

func (v *Viewer) nextSearchResult(ctx context.Context) {
	if !v.searchIssued {
		v.hub.SendErrorMsg(ctx, "No search issued. Use / or search command.")
		return
	}
	n, ok := v.engine.NextSearchResult(v.firstOrdinal() + 1)
	if !ok {
		v.info(ctx, "No more results below")
		return
	}
	v.hub.SendPaging(ctx, hub.JumpToLineRequest(n))
}

func (v *Viewer) prevSearchResult(ctx context.Context) {
	if !v.searchIssued {
		v.hub.SendErrorMsg(ctx, "No search issued. Use / or search command.")
		return
	}
	n, ok := v.engine.PrevSearchResult(v.firstOrdinal() - 1)
	if !ok {
		v.info(ctx, "No more results upwards")
		return
	}
	v.hub.SendPaging(ctx, hub.JumpToLineRequest(n))
}

// applyFilters hands the rules of the filter list to the engine
func (v *Viewer) applyFilters(ctx context.Context) {
	rules := v.filters.Rules()
	v.engine.SetFilters(rules)

	switch n := filter.CountApplied(rules); n {
	case 0:
		v.info(ctx, "no filters applied - log unfiltered")
	case 1:
		v.info(ctx, "one filter applied")
	default:
		v.info(ctx, fmt.Sprintf("%d filters applied", n))
	}
	v.refresh()
	v.hub.SendDraw(ctx, nil)
}

func (v *Viewer) closeFilterList(ctx context.Context) {
	v.focus = FocusGeneral
	v.applyFilters(ctx)
}
