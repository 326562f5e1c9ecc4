package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/config"
)

// NewScreen creates a screen for the controlling terminal. The caller
// must Init it before use and Fini it when done.
func NewScreen() (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tcell screen")
	}
	return s, nil
}

const paletteMask config.Attribute = 0x1ff
const rgbMask config.Attribute = 0xffffff

func tcellColor(a config.Attribute) tcell.Color {
	if a&config.AttrTrueColor != 0 {
		return tcell.NewHexColor(int32(a & rgbMask))
	}

	c := a & paletteMask
	if c == config.ColorDefault {
		return tcell.ColorDefault
	}
	// palette colors are stored off by one so that 0 means default
	return tcell.PaletteColor(int(c) - 1)
}

// StyleFor converts a configured style into a tcell.Style. Attributes
// set on either the foreground or the background apply to the cell.
func StyleFor(s config.Style) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(s.Fg)).
		Background(tcellColor(s.Bg))

	attrs := s.Fg | s.Bg
	if attrs&config.AttrBold != 0 {
		st = st.Bold(true)
	}
	if attrs&config.AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if attrs&config.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}

// NewStyles resolves every style in the set
func NewStyles(ss *config.StyleSet) Styles {
	return Styles{
		Basic:          StyleFor(ss.Basic),
		Highlight:      StyleFor(ss.Highlight),
		StatusBar:      StyleFor(ss.StatusBar),
		Prompt:         StyleFor(ss.Prompt),
		Error:          StyleFor(ss.Error),
		LineNumber:     StyleFor(ss.LineNumber),
		FilterList:     StyleFor(ss.FilterList),
		FilterSelected: StyleFor(ss.FilterSelected),
		Disabled:       StyleFor(ss.Disabled),
	}
}
