package ui

import (
	"context"
	"fmt"

	"github.com/sherlog/sherlog/hub"
	"github.com/sherlog/sherlog/internal/keyseq"
)

const actionPrefix = "sherlog."

// This is the global map of canonical action name to actions
var nameToActions map[string]Action

// This is the default keybinding used by NewKeymap(). Keys are key
// sequences in the notation accepted by keyseq.ToKeyList
var defaultKeyBinding map[string]Action

// Execute fulfills the Action interface for AfterFunc
func (a ActionFunc) Execute(ctx context.Context, v *Viewer, k keyseq.Key) {
	a(ctx, v, k)
}

// Register registers `a` into the global action registry by the name
// `name`, and maps it to each of the key sequences in `defaultKeys`.
// Called during package init() to set up built-in actions.
func (a ActionFunc) Register(name string, defaultKeys ...string) {
	nameToActions[actionPrefix+name] = a
	for _, s := range defaultKeys {
		list, err := keyseq.ToKeyList(s)
		if err != nil {
			panic(fmt.Sprintf("invalid default key %q for %s: %s", s, name, err))
		}
		defaultKeyBinding[list.String()] = a
	}
}

// makePagingAction creates an ActionFunc that sends the given PagingRequest.
func makePagingAction(req hub.PagingRequest) ActionFunc {
	return ActionFunc(func(ctx context.Context, v *Viewer, _ keyseq.Key) {
		v.hub.SendPaging(ctx, req)
	})
}

func init() {
	// Build the global maps
	nameToActions = map[string]Action{}
	defaultKeyBinding = map[string]Action{}

	makePagingAction(hub.ToLineAbove).Register("ScrollUp", "ArrowUp", "k", "C-p")
	makePagingAction(hub.ToLineBelow).Register("ScrollDown", "ArrowDown", "j", "C-n", "Enter")
	makePagingAction(hub.ToScrollPageUp).Register("ScrollPageUp", "Pgup", "b", "C-b")
	makePagingAction(hub.ToScrollPageDown).Register("ScrollPageDown", "Pgdn", "Space", "C-f")
	makePagingAction(hub.ToScrollLeft).Register("ScrollLeft", "ArrowLeft")
	makePagingAction(hub.ToScrollRight).Register("ScrollRight", "ArrowRight")
	ActionFunc(doScrollLeftFast).Register("ScrollLeftFast", "C-ArrowLeft")
	ActionFunc(doScrollRightFast).Register("ScrollRightFast", "C-ArrowRight")
	makePagingAction(hub.ToScrollFirstItem).Register("GoTop", "Home", "g,g")
	makePagingAction(hub.ToScrollLastItem).Register("GoBottom", "End", "G")

	ActionFunc(doCommandPrompt).Register("CommandPrompt", ":")
	ActionFunc(doSearchPrompt).Register("SearchPrompt", "/")
	ActionFunc(doHighlightPrompt).Register("HighlightPrompt")
	ActionFunc(doNextSearchResult).Register("NextSearchResult", "n")
	ActionFunc(doPrevSearchResult).Register("PrevSearchResult", "N")
	ActionFunc(doFilterList).Register("FilterList", "f")
	ActionFunc(doToggleWrap).Register("ToggleWrap")
	ActionFunc(doToggleLineNumbers).Register("ToggleLineNumbers")
	ActionFunc(doClearStatus).Register("ClearStatus", "Esc")
	ActionFunc(doRedraw).Register("Redraw", "C-l")
	ActionFunc(doQuit).Register("Quit", "q")
}

func doScrollLeftFast(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.hub.SendPaging(ctx, hub.ScrollColumnsRequest(-v.config.TabWidth))
}

func doScrollRightFast(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.hub.SendPaging(ctx, hub.ScrollColumnsRequest(v.config.TabWidth))
}

func doCommandPrompt(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.openPrompt(ctx, PromptCommand, "")
}

func doSearchPrompt(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.openPrompt(ctx, PromptSearch, "")
}

func doHighlightPrompt(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.openPrompt(ctx, PromptHighlight, "")
}

func doNextSearchResult(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.nextSearchResult(ctx)
}

func doPrevSearchResult(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.prevSearchResult(ctx)
}

func doFilterList(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.openFilterList(ctx)
}

func doToggleWrap(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.toggleWrap(ctx)
}

func doToggleLineNumbers(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.toggleLineNumbers(ctx)
}

func doClearStatus(ctx context.Context, v *Viewer, _ keyseq.Key) {
	if v.clearStatus(v.status.gen) {
		v.hub.SendDrawStatus(ctx)
	}
}

func doRedraw(ctx context.Context, v *Viewer, _ keyseq.Key) {
	v.hub.SendDraw(ctx, &hub.DrawOptions{ForceSync: true})
}

func doQuit(_ context.Context, v *Viewer, _ keyseq.Key) {
	v.quit = true
}
