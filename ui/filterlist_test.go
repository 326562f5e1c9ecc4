package ui

import (
	"testing"
	"time"

	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilterList(rules ...string) *FilterList {
	fl := NewFilterList(filter.NewCompiler(time.Minute), filter.CaseSensitive)
	fl.Load(rules)
	return fl
}

func feedFilterList(t *testing.T, fl *FilterList, names ...string) filterListReaction {
	t.Helper()
	var r filterListReaction
	for _, name := range names {
		k, err := keyseq.ToKey(name)
		require.NoError(t, err, "keyseq.ToKey(%q) should succeed", name)
		r = fl.handleKey(k)
	}
	return r
}

func TestFilterList(t *testing.T) {
	t.Parallel()

	t.Run("load", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("ERROR", "! DEBUG", "# kernel", "(")
		assert.Equal(t, 4, fl.Len())
		assert.Equal(t, 0, fl.Selected())
		assert.Equal(t, []string{"ERROR", "! DEBUG", "# kernel", "("}, fl.Notations())

		rules := fl.Rules()
		require.Len(t, rules, 3, "invalid patterns are left out")
		assert.False(t, rules[0].Negate)
		assert.True(t, rules[1].Negate)
		assert.False(t, rules[2].Active)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList()
		assert.Equal(t, -1, fl.Selected())
		feedFilterList(t, fl, "j", "d", "n", "BS")
		assert.Equal(t, 0, fl.Len())
		assert.Equal(t, -1, fl.Selected())
	})

	t.Run("selection", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("a", "b", "c")
		feedFilterList(t, fl, "j", "ArrowDown", "j")
		assert.Equal(t, 2, fl.Selected(), "selection stops at the last entry")
		feedFilterList(t, fl, "k", "ArrowUp", "k")
		assert.Equal(t, 0, fl.Selected(), "selection stops at the first entry")
	})

	t.Run("add and insert", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("a", "c")

		feedFilterList(t, fl, "a", "b", "Enter")
		assert.Equal(t, []string{"a", "b", "c"}, fl.Notations())
		assert.Equal(t, 1, fl.Selected())

		feedFilterList(t, fl, "i", "x", "Esc")
		assert.Equal(t, []string{"a", "x", "b", "c"}, fl.Notations())
		assert.False(t, fl.Editing())
	})

	t.Run("edit", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("foo")
		feedFilterList(t, fl, "e", "BS", "BS", "x")
		assert.True(t, fl.Editing())
		assert.Equal(t, []string{"fx"}, fl.Notations())

		feedFilterList(t, fl, "(")
		assert.Empty(t, fl.Rules(), "an invalid pattern takes no part in filtering")
		feedFilterList(t, fl, "BS", "Enter")
		assert.Len(t, fl.Rules(), 1)
	})

	t.Run("toggles", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("foo")
		feedFilterList(t, fl, "d", "n")
		assert.Equal(t, []string{"#! foo"}, fl.Notations())
		feedFilterList(t, fl, "d")
		assert.Equal(t, []string{"! foo"}, fl.Notations())
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("a", "b")
		feedFilterList(t, fl, "j", "Delete")
		assert.Equal(t, []string{"a"}, fl.Notations())
		assert.Equal(t, 0, fl.Selected())
		feedFilterList(t, fl, "BS2")
		assert.Equal(t, 0, fl.Len())
		assert.Equal(t, -1, fl.Selected())
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()
		fl := newTestFilterList("a")
		assert.Equal(t, filterListClose, feedFilterList(t, fl, "Esc"))
		assert.Equal(t, filterListClose, feedFilterList(t, fl, "Enter"))
		assert.Equal(t, filterListNothing, feedFilterList(t, fl, "e", "Esc"))
	})
}
