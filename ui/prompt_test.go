package ui

import (
	"testing"

	"github.com/sherlog/sherlog/internal/keyseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedPrompt(t *testing.T, p *Prompt, names ...string) promptReaction {
	t.Helper()
	var r promptReaction
	for _, name := range names {
		k, err := keyseq.ToKey(name)
		require.NoError(t, err, "keyseq.ToKey(%q) should succeed", name)
		r = p.handleKey(k)
	}
	return r
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	t.Run("headers", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ":", NewPrompt(PromptCommand, "").Header())
		assert.Equal(t, "search: ", NewPrompt(PromptSearch, "").Header())
		assert.Equal(t, "highlight: ", NewPrompt(PromptHighlight, "").Header())
	})

	t.Run("editing", func(t *testing.T) {
		t.Parallel()
		p := NewPrompt(PromptSearch, "foo")
		assert.Equal(t, promptNothing, feedPrompt(t, p, "b", "a", "r"))
		assert.Equal(t, "foobar", p.Text())

		feedPrompt(t, p, "C-a", "x")
		assert.Equal(t, "xfoobar", p.Text())

		feedPrompt(t, p, "ArrowRight", "ArrowRight", "C-k")
		assert.Equal(t, "xfo", p.Text())

		feedPrompt(t, p, "BS2")
		assert.Equal(t, "xf", p.Text())

		feedPrompt(t, p, "Home", "Delete")
		assert.Equal(t, "f", p.Text())

		feedPrompt(t, p, "End", "Space", "C-u")
		assert.Equal(t, "", p.Text())
	})

	t.Run("modified runes are not inserted", func(t *testing.T) {
		t.Parallel()
		p := NewPrompt(PromptCommand, "")
		feedPrompt(t, p, "M-x")
		assert.Equal(t, "", p.Text())
	})

	t.Run("submit and cancel", func(t *testing.T) {
		t.Parallel()
		p := NewPrompt(PromptCommand, "q")
		assert.Equal(t, promptSubmit, feedPrompt(t, p, "Enter"))
		assert.Equal(t, promptCancel, feedPrompt(t, p, "Esc"))
		assert.Equal(t, "q", p.Text())
	})
}
