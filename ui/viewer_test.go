package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/config"
	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/sherlog/sherlog/internal/mock"
	"github.com/sherlog/sherlog/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numberedLog returns n lines "line 0" ... "line n-1"
func numberedLog(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}

func newTestViewer(t *testing.T, src string, width, height int, setup ...func(*config.Config)) (*Viewer, *mock.Screen) {
	t.Helper()

	var cfg config.Config
	require.NoError(t, cfg.Init(), "cfg.Init should succeed")
	cfg.StatusMsgDelay = 0
	for _, f := range setup {
		f(&cfg)
	}

	scr := mock.NewScreen(width, height)
	v, err := New(sherlog.New(src), scr, &cfg, Options{Filename: "test.log"})
	require.NoError(t, err, "New should succeed")
	v.display(0, false)
	return v, scr
}

// drain processes every pending hub message, the way Loop would
func drain(ctx context.Context, v *Viewer) {
	for {
		select {
		case r := <-v.hub.PagingCh():
			v.movePage(r.Data())
		case r := <-v.hub.StatusMsgCh():
			v.printStatus(ctx, r.Data())
		case r := <-v.hub.DrawCh():
			v.draw(r.Data())
		default:
			return
		}
	}
}

func pressKeys(t *testing.T, ctx context.Context, v *Viewer, names ...string) {
	t.Helper()
	for _, name := range names {
		k, err := keyseq.ToKey(name)
		require.NoError(t, err, "keyseq.ToKey(%q) should succeed", name)
		v.handleKey(ctx, k)
		drain(ctx, v)
	}
}

func typeText(ctx context.Context, v *Viewer, s string) {
	for _, r := range s {
		v.handleKey(ctx, keyseq.NewKeyFromRune(r))
		drain(ctx, v)
	}
}

// runCommand types command at the ':' prompt and submits it
func runCommand(t *testing.T, ctx context.Context, v *Viewer, command string) {
	t.Helper()
	pressKeys(t, ctx, v, ":")
	require.Equal(t, FocusPrompt, v.Focus(), "':' should open the prompt")
	typeText(ctx, v, command)
	pressKeys(t, ctx, v, "Enter")
}

func firstShown(v *Viewer) int {
	l, ok := v.Window().First()
	if !ok {
		return -1
	}
	return l.Ordinal
}

func TestNewViewer(t *testing.T) {
	t.Parallel()

	t.Run("window fills the text area", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, v.Window().Ordinals())
	})

	t.Run("configured filters are applied", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, "a ERROR\nb INFO\nc ERROR\n", 40, 10, func(cfg *config.Config) {
			cfg.Filters = []string{"ERROR"}
		})
		assert.Equal(t, 2, v.engine.FilteredCount())
		assert.Equal(t, []int{0, 2}, v.Window().Ordinals())
	})

	t.Run("bad key binding", func(t *testing.T) {
		t.Parallel()
		var cfg config.Config
		require.NoError(t, cfg.Init())
		cfg.Keymap["x"] = "NoSuchAction"
		_, err := New(sherlog.New("x\n"), mock.NewScreen(10, 5), &cfg, Options{})
		require.Error(t, err, "unknown actions should be rejected")
	})
}

func TestScrolling(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("line by line", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "j")
		assert.Equal(t, 1, firstShown(v))
		pressKeys(t, ctx, v, "ArrowDown", "C-n")
		assert.Equal(t, 3, firstShown(v))
		pressKeys(t, ctx, v, "k")
		assert.Equal(t, 2, firstShown(v))
		pressKeys(t, ctx, v, "k", "k", "k")
		assert.Equal(t, 0, firstShown(v), "scrolling up stops at the top")
	})

	t.Run("page by page", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "Space")
		assert.Equal(t, 9, firstShown(v))
		pressKeys(t, ctx, v, "Pgdn")
		assert.Equal(t, 18, firstShown(v))
		pressKeys(t, ctx, v, "b")
		assert.Equal(t, 9, firstShown(v))
		pressKeys(t, ctx, v, "b")
		assert.Equal(t, 0, firstShown(v))
		pressKeys(t, ctx, v, "b")
		assert.Equal(t, 0, firstShown(v), "paging up stops at the top")
	})

	t.Run("page down at the bottom keeps the window", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "G")
		assert.Equal(t, 21, firstShown(v))
		pressKeys(t, ctx, v, "Space")
		assert.Equal(t, 21, firstShown(v))
	})

	t.Run("top and bottom", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "End")
		l, ok := v.Window().Last()
		require.True(t, ok)
		assert.Equal(t, 29, l.Ordinal)

		pressKeys(t, ctx, v, "g", "g")
		assert.Equal(t, 0, firstShown(v))
	})

	t.Run("broken key sequence", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "g", "j")
		assert.Equal(t, 1, firstShown(v), "a key ending a sequence early is handled on its own")
	})

	t.Run("scrolling skips filtered lines", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 4, func(cfg *config.Config) {
			cfg.Filters = []string{"[05]$"}
		})
		require.Equal(t, []int{0, 5, 10}, v.Window().Ordinals())

		pressKeys(t, ctx, v, "j")
		assert.Equal(t, []int{5, 10, 15}, v.Window().Ordinals())
		pressKeys(t, ctx, v, "k")
		assert.Equal(t, []int{0, 5, 10}, v.Window().Ordinals())
	})

	t.Run("horizontal", func(t *testing.T) {
		t.Parallel()
		v, scr := newTestViewer(t, numberedLog(3), 40, 5)

		pressKeys(t, ctx, v, "ArrowRight")
		assert.Equal(t, "ine 0", scr.Row(0))
		pressKeys(t, ctx, v, "ArrowLeft", "ArrowLeft")
		assert.Equal(t, "line 0", scr.Row(0), "offset never goes negative")
		pressKeys(t, ctx, v, "C-ArrowRight")
		assert.Equal(t, 4, v.xOffset)
		assert.Equal(t, " 0", scr.Row(0))
	})

	t.Run("mouse wheel", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(50), 40, 10)

		v.handleMouse(ctx, tcell.WheelDown, tcell.ModNone)
		drain(ctx, v)
		assert.Equal(t, 3, firstShown(v))

		v.handleMouse(ctx, tcell.WheelDown, tcell.ModCtrl)
		drain(ctx, v)
		assert.Equal(t, 13, firstShown(v))

		v.handleMouse(ctx, tcell.WheelUp, tcell.ModNone)
		drain(ctx, v)
		assert.Equal(t, 10, firstShown(v))
	})
}

func TestJumpCommand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v, _ := newTestViewer(t, numberedLog(30), 40, 10)

	runCommand(t, ctx, v, "15")
	assert.Equal(t, 14, firstShown(v), "line numbers are 1 based")

	runCommand(t, ctx, v, "999")
	assert.Equal(t, 21, firstShown(v), "jumping past the end shows the bottom")

	runCommand(t, ctx, v, "top")
	assert.Equal(t, 0, firstShown(v))

	runCommand(t, ctx, v, "bottom")
	assert.Equal(t, 21, firstShown(v))
}

func TestCommands(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		runCommand(t, ctx, v, "frobnicate")
		assert.Equal(t, "Unknown command: frobnicate", v.status.msg)
		assert.True(t, v.status.err)
	})

	t.Run("quit", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		runCommand(t, ctx, v, "quit")
		assert.True(t, v.quit)
	})

	t.Run("toggles", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)

		runCommand(t, ctx, v, "w")
		assert.True(t, v.wrap)
		assert.Equal(t, "word wrap on", v.status.msg)
		runCommand(t, ctx, v, "wrap")
		assert.False(t, v.wrap)
		assert.Equal(t, "word wrap off", v.status.msg)

		runCommand(t, ctx, v, "l")
		assert.True(t, v.lineNumbers)
		assert.Equal(t, "line numbers on", v.status.msg)
	})

	t.Run("prompt prefill", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)

		runCommand(t, ctx, v, "h foo  bar")
		require.Equal(t, FocusPrompt, v.Focus())
		assert.Equal(t, PromptHighlight, v.prompt.Kind())
		assert.Equal(t, "foo bar", v.prompt.Text())
	})

	t.Run("cancel", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)

		pressKeys(t, ctx, v, ":")
		typeText(ctx, v, "q")
		pressKeys(t, ctx, v, "Esc")
		assert.Equal(t, FocusGeneral, v.Focus())
		assert.False(t, v.quit, "a canceled command is not run")
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	search := func(t *testing.T, v *Viewer, pattern string) {
		t.Helper()
		pressKeys(t, ctx, v, "/")
		require.Equal(t, FocusPrompt, v.Focus())
		typeText(ctx, v, pattern)
		pressKeys(t, ctx, v, "Enter")
	}

	t.Run("jumps to results", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		search(t, v, "line 2")
		assert.Equal(t, "11 matches", v.status.msg)
		assert.Equal(t, 2, firstShown(v))

		pressKeys(t, ctx, v, "n")
		assert.Equal(t, 20, firstShown(v))
		pressKeys(t, ctx, v, "n")
		assert.Equal(t, 21, firstShown(v))
		pressKeys(t, ctx, v, "N")
		assert.Equal(t, 20, firstShown(v))
		pressKeys(t, ctx, v, "N")
		assert.Equal(t, 2, firstShown(v))
		pressKeys(t, ctx, v, "N")
		assert.Equal(t, 2, firstShown(v))
		assert.Equal(t, "No more results upwards", v.status.msg)
	})

	t.Run("no more results below", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		search(t, v, "line 29")
		assert.Equal(t, 29, firstShown(v))
		pressKeys(t, ctx, v, "n")
		assert.Equal(t, "No more results below", v.status.msg)
		assert.False(t, v.status.err)
	})

	t.Run("without a search", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		pressKeys(t, ctx, v, "n")
		assert.Equal(t, "No search issued. Use / or search command.", v.status.msg)
		assert.True(t, v.status.err)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		search(t, v, "zzz")
		assert.Equal(t, "Pattern not found: zzz", v.status.msg)
		assert.True(t, v.status.err)
		assert.Equal(t, 0, firstShown(v))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		search(t, v, "(")
		assert.True(t, strings.HasPrefix(v.status.msg, "Invalid search pattern: "), "got %q", v.status.msg)
		assert.False(t, v.searchIssued)
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10)

		search(t, v, "line 1")
		require.True(t, v.searchIssued)
		search(t, v, "")
		assert.Equal(t, "Search cleared", v.status.msg)
		assert.False(t, v.searchIssued)
		assert.Nil(t, v.engine.Search())
	})
}

func TestHighlight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	v, scr := newTestViewer(t, "foo bar baz\n", 40, 5)

	runCommand(t, ctx, v, "h bar")
	pressKeys(t, ctx, v, "Enter")
	require.NotNil(t, v.engine.Highlight())

	_, style := scr.Cell(0, 0)
	assert.Equal(t, v.styles.Basic, style)
	ch, style := scr.Cell(4, 0)
	assert.Equal(t, 'b', ch)
	assert.Equal(t, v.styles.Highlight, style)

	runCommand(t, ctx, v, "h")
	pressKeys(t, ctx, v, "Enter")
	assert.Nil(t, v.engine.Highlight(), "a blank pattern removes the highlight")
	_, style = scr.Cell(4, 0)
	assert.Equal(t, v.styles.Basic, style)
}

func TestFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	const src = "a ERROR\nb INFO\nc ERROR\nd DEBUG\ne INFO\n"

	t.Run("filter command", func(t *testing.T) {
		t.Parallel()
		v, scr := newTestViewer(t, src, 60, 6)

		runCommand(t, ctx, v, "f ERROR")
		assert.Equal(t, "one filter applied", v.status.msg)
		assert.Equal(t, []int{0, 2}, v.Window().Ordinals())
		assert.Equal(t, "a ERROR", scr.Row(0))
		assert.Equal(t, "c ERROR", scr.Row(1))
		assert.Contains(t, scr.Row(5), "[2/5 filtered] 1/5 test.log")

		runCommand(t, ctx, v, "f c")
		assert.Equal(t, "2 filters applied", v.status.msg)
		assert.Equal(t, []int{2}, v.Window().Ordinals())
	})

	t.Run("filter list", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, src, 60, 12)

		pressKeys(t, ctx, v, "f")
		require.Equal(t, FocusFilters, v.Focus())

		pressKeys(t, ctx, v, "a")
		require.True(t, v.filters.Editing())
		typeText(ctx, v, "INFO")
		pressKeys(t, ctx, v, "Enter")
		assert.False(t, v.filters.Editing())
		assert.Equal(t, FocusFilters, v.Focus(), "Enter while editing only ends editing")

		pressKeys(t, ctx, v, "n")
		assert.Equal(t, []string{"! INFO"}, v.filters.Notations())

		pressKeys(t, ctx, v, "Esc")
		assert.Equal(t, FocusGeneral, v.Focus())
		assert.Equal(t, "one filter applied", v.status.msg)
		assert.Equal(t, []int{0, 2, 3}, v.Window().Ordinals())
	})

	t.Run("disabling every filter", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, src, 60, 12, func(cfg *config.Config) {
			cfg.Filters = []string{"ERROR"}
		})

		pressKeys(t, ctx, v, "f", "d", "Esc")
		assert.Equal(t, "no filters applied - log unfiltered", v.status.msg)
		assert.Equal(t, 5, v.engine.FilteredCount())
	})
}

func TestStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("position", func(t *testing.T) {
		t.Parallel()
		v, scr := newTestViewer(t, numberedLog(30), 40, 10)
		pressKeys(t, ctx, v, "j", "C-l")
		assert.Equal(t, "2/30 test.log", strings.TrimSpace(scr.Row(9)))
	})

	t.Run("Esc clears the message", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		runCommand(t, ctx, v, "bogus")
		require.NotEmpty(t, v.status.msg)
		pressKeys(t, ctx, v, "Esc")
		assert.Empty(t, v.status.msg)
	})

	t.Run("prompt", func(t *testing.T) {
		t.Parallel()
		v, scr := newTestViewer(t, numberedLog(3), 40, 5)
		pressKeys(t, ctx, v, "/")
		typeText(ctx, v, "abc")
		assert.Equal(t, "search: abc", scr.Row(4))
		x, y, visible := scr.Cursor()
		assert.True(t, visible)
		assert.Equal(t, 11, x)
		assert.Equal(t, 4, y)
	})

	t.Run("messages clear after a delay", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		v.config.StatusMsgDelay = 10

		runCommand(t, ctx, v, "wrap")
		require.Equal(t, "word wrap on", v.status.msg)

		select {
		case gen := <-v.clearCh:
			assert.True(t, v.clearStatus(gen))
		case <-time.After(5 * time.Second):
			require.Fail(t, "timed out waiting for the status to clear")
		}
		assert.Empty(t, v.status.msg)
	})

	t.Run("stale clear requests are ignored", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		runCommand(t, ctx, v, "wrap")
		gen := v.status.gen
		runCommand(t, ctx, v, "wrap")
		assert.False(t, v.clearStatus(gen))
		assert.Equal(t, "word wrap off", v.status.msg)
	})
}

func TestKeyBindings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("C-c always quits", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5)
		pressKeys(t, ctx, v, "/", "C-c")
		assert.True(t, v.quit)
	})

	t.Run("custom binding", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(30), 40, 10, func(cfg *config.Config) {
			cfg.Keymap["x"] = "Quit"
			cfg.Keymap["C-d"] = "sherlog.ScrollPageDown"
		})
		pressKeys(t, ctx, v, "C-d")
		assert.Equal(t, 9, firstShown(v))
		pressKeys(t, ctx, v, "x")
		assert.True(t, v.quit)
	})

	t.Run("unbinding", func(t *testing.T) {
		t.Parallel()
		v, _ := newTestViewer(t, numberedLog(3), 40, 5, func(cfg *config.Config) {
			cfg.Keymap["q"] = "-"
		})
		pressKeys(t, ctx, v, "q")
		assert.False(t, v.quit)
	})

	t.Run("invalid key", func(t *testing.T) {
		t.Parallel()
		_, err := NewKeymap(map[string]string{"C-NoSuchKey": "Quit"})
		require.Error(t, err)
	})

	t.Run("action names", func(t *testing.T) {
		t.Parallel()
		names := ActionNames()
		assert.Contains(t, names, "sherlog.Quit")
		assert.Contains(t, names, "sherlog.SearchPrompt")
		assert.Contains(t, names, "sherlog.GoTop")
	})
}

func TestLoop(t *testing.T) {
	t.Parallel()

	v, scr := newTestViewer(t, numberedLog(30), 40, 10)
	t.Cleanup(scr.Fini)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- v.Loop(ctx) }()

	scr.SendEvent(tcell.NewEventResize(40, 10))
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrInterrupted)
		assert.True(t, util.IsIgnorableError(err))
		st, ok := util.GetExitStatus(err)
		assert.True(t, ok)
		assert.Equal(t, 130, st)
	case <-time.After(5 * time.Second):
		require.Fail(t, "Loop did not return after cancel")
	}
	assert.True(t, scr.MouseEnabled())
}

func TestErrUserQuit(t *testing.T) {
	t.Parallel()
	assert.True(t, util.IsIgnorableError(ErrUserQuit))
	st, ok := util.GetExitStatus(ErrUserQuit)
	assert.True(t, ok)
	assert.Equal(t, 0, st)
}
