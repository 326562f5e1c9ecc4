package config

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StyleSet holds styles for various sections
type StyleSet struct {
	Basic          Style `json:"Basic" yaml:"Basic" toml:"Basic"`
	Highlight      Style `json:"Highlight" yaml:"Highlight" toml:"Highlight"`
	StatusBar      Style `json:"StatusBar" yaml:"StatusBar" toml:"StatusBar"`
	Prompt         Style `json:"Prompt" yaml:"Prompt" toml:"Prompt"`
	Error          Style `json:"Error" yaml:"Error" toml:"Error"`
	LineNumber     Style `json:"LineNumber" yaml:"LineNumber" toml:"LineNumber"`
	FilterList     Style `json:"FilterList" yaml:"FilterList" toml:"FilterList"`
	FilterSelected Style `json:"FilterSelected" yaml:"FilterSelected" toml:"FilterSelected"`
	Disabled       Style `json:"Disabled" yaml:"Disabled" toml:"Disabled"`
}

// Attribute represents terminal display attributes such as colors
// and text styling (bold, underline, reverse). It is a uint32 bitfield:
//
//	Bits 0-8:   Palette color index (0=default, 1-256 for 256-color palette)
//	Bits 0-23:  RGB color value (when AttrTrueColor flag is set)
//	Bit 24:     AttrTrueColor, set for true colors
//	Bit 25:     AttrBold
//	Bit 26:     AttrUnderline
//	Bit 27:     AttrReverse
//	Bits 28-31: Reserved
type Attribute uint32

// Named palette color constants (values 0-8).
const (
	ColorDefault Attribute = 0x0000
	ColorBlack   Attribute = 0x0001
	ColorRed     Attribute = 0x0002
	ColorGreen   Attribute = 0x0003
	ColorYellow  Attribute = 0x0004
	ColorBlue    Attribute = 0x0005
	ColorMagenta Attribute = 0x0006
	ColorCyan    Attribute = 0x0007
	ColorWhite   Attribute = 0x0008
)

const (
	AttrTrueColor Attribute = 0x01000000
	AttrBold      Attribute = 0x02000000
	AttrUnderline Attribute = 0x04000000
	AttrReverse   Attribute = 0x08000000
)

// Style describes display attributes for foreground and background.
type Style struct {
	Fg Attribute
	Bg Attribute
}

var colorNames = map[string]Attribute{
	"default": ColorDefault,
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

var attrNames = map[string]Attribute{
	"bold":      AttrBold,
	"underline": AttrUnderline,
	"reverse":   AttrReverse,
}

// NewStyleSet creates a new StyleSet struct
func NewStyleSet() *StyleSet {
	ss := &StyleSet{}
	ss.Init()
	return ss
}

// Init initializes the StyleSet with default foreground and background colors
// for each UI element
func (ss *StyleSet) Init() {
	ss.Basic = Style{Fg: ColorDefault, Bg: ColorDefault}
	ss.Highlight = Style{Fg: ColorRed, Bg: ColorDefault}
	ss.StatusBar = Style{Fg: ColorDefault | AttrReverse, Bg: ColorDefault}
	ss.Prompt = Style{Fg: ColorDefault, Bg: ColorDefault}
	ss.Error = Style{Fg: ColorRed | AttrBold, Bg: ColorDefault}
	ss.LineNumber = Style{Fg: ColorYellow, Bg: ColorDefault}
	ss.FilterList = Style{Fg: ColorDefault, Bg: ColorDefault}
	ss.FilterSelected = Style{Fg: ColorYellow | AttrBold, Bg: ColorDefault}
	ss.Disabled = Style{Fg: ColorBlack | AttrBold, Bg: ColorDefault}
}

// UnmarshalJSON satisfies json.RawMessage.
func (s *Style) UnmarshalJSON(buf []byte) error {
	raw := []string{}
	if err := json.Unmarshal(buf, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal Style")
	}
	return StringsToStyle(s, raw)
}

// UnmarshalYAML decodes a YAML array of strings into a Style.
func (s *Style) UnmarshalYAML(unmarshal func(any) error) error {
	var raw []string
	if err := unmarshal(&raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal Style from YAML")
	}
	return StringsToStyle(s, raw)
}

// UnmarshalText decodes a single string such as "yellow bold on_blue"
// into a Style. Items may be separated by spaces or commas. TOML
// configuration files use this form.
func (s *Style) UnmarshalText(b []byte) error {
	raw := strings.FieldsFunc(string(b), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	return StringsToStyle(s, raw)
}

// StringsToStyle parses a list of style items into style. An item is
// a foreground color ("red", "214", "#ff00ff"), a background color
// (the same with an "on_" prefix), or an attribute ("bold",
// "underline", "reverse", and "on_bold" for the background). Later
// colors override earlier ones. style is left untouched when an item
// cannot be parsed.
func StringsToStyle(style *Style, raw []string) error {
	var fg, bg, fgAttr, bgAttr Attribute
	for _, s := range raw {
		if a, ok := attrNames[s]; ok {
			fgAttr |= a
			continue
		}
		if s == "on_bold" {
			bgAttr |= AttrBold
			continue
		}

		if name, ok := strings.CutPrefix(s, "on_"); ok {
			c, err := parseColor(name)
			if err != nil {
				return errors.Wrapf(err, "invalid background '%s'", s)
			}
			bg = c
			continue
		}

		c, err := parseColor(s)
		if err != nil {
			return errors.Wrapf(err, "invalid style item '%s'", s)
		}
		fg = c
	}

	style.Fg = fg | fgAttr
	style.Bg = bg | bgAttr
	return nil
}

// parseColor parses a color name, a 256 color palette index, or a
// "#rrggbb" true color
func parseColor(s string) (Attribute, error) {
	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return 0, errors.Errorf("true color must be #rrggbb")
		}
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, errors.Wrap(err, "failed to parse true color")
		}
		return Attribute(rgb) | AttrTrueColor, nil
	}

	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.New("unknown color")
	}
	// palette index 0 is reserved for the default color
	return Attribute(n + 1), nil
}
