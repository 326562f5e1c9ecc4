package keyseq

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// KeyType is the key code reported by the terminal
type KeyType = tcell.Key

const KeyRune = tcell.KeyRune

var stringToKey = map[string]KeyType{}
var keyToString = map[KeyType]string{}

// mapkey registers a key name. A key keeps the first name it was
// registered with, but any number of names may map to the same key.
func mapkey(n string, k KeyType) {
	stringToKey[n] = k
	if _, ok := keyToString[k]; !ok {
		keyToString[k] = n
	}
}

func init() {
	for i := range 12 {
		mapkey(fmt.Sprintf("F%d", i+1), tcell.KeyF1+KeyType(i))
	}

	mapkey("Insert", tcell.KeyInsert)
	mapkey("Delete", tcell.KeyDelete)
	mapkey("Home", tcell.KeyHome)
	mapkey("End", tcell.KeyEnd)
	mapkey("Pgup", tcell.KeyPgUp)
	mapkey("Pgdn", tcell.KeyPgDn)
	mapkey("ArrowUp", tcell.KeyUp)
	mapkey("ArrowDown", tcell.KeyDown)
	mapkey("ArrowLeft", tcell.KeyLeft)
	mapkey("ArrowRight", tcell.KeyRight)
	mapkey("BackTab", tcell.KeyBacktab)

	// These share their codes with C-h, C-i, C-m and C-[, and are
	// registered first so that they are the names that get printed
	mapkey("BS", tcell.KeyBackspace)
	mapkey("Tab", tcell.KeyTab)
	mapkey("Enter", tcell.KeyEnter)
	mapkey("Esc", tcell.KeyEscape)
	mapkey("BS2", tcell.KeyBackspace2)

	for i := range 26 {
		mapkey(fmt.Sprintf("C-%c", 'a'+i), tcell.KeyCtrlA+KeyType(i))
	}
	mapkey("C-Space", tcell.KeyCtrlSpace)
	mapkey("C-[", tcell.KeyCtrlLeftSq)
	mapkey("C-\\", tcell.KeyCtrlBackslash)
	mapkey("C-]", tcell.KeyCtrlRightSq)
	mapkey("C-^", tcell.KeyCtrlCarat)
	mapkey("C-_", tcell.KeyCtrlUnderscore)
}

// isControlCode returns true for keys whose name already carries the
// control modifier (C-a, BS, Enter ...)
func isControlCode(k KeyType) bool {
	return k < 0x20 || k == tcell.KeyDEL
}

// ToKeyList parses a comma separated key sequence such as "g,g" or
// "C-x,C-c"
func ToKeyList(ksk string) (KeyList, error) {
	list := KeyList{}
	for _, term := range strings.Split(ksk, ",") {
		term = strings.TrimSpace(term)

		k, err := ToKey(term)
		if err != nil {
			return list, errors.Wrapf(err, "failed to convert '%s'", term)
		}

		list = append(list, k)
	}
	return list, nil
}

// ToKey parses a single key name. Names are either one character
// ("q", "G", "/"), "Space", a named key ("ArrowUp", "Pgdn", "F5"), or
// a control key ("C-f"), optionally prefixed by modifiers ("M-", "C-",
// "S-") in any order.
func ToKey(name string) (Key, error) {
	var mod ModifierKey
	rest := name
	for {
		if rest == "Space" {
			return Key{Modifier: mod, Key: KeyRune, Ch: ' '}, nil
		}

		if mod&ModCtrl != 0 {
			if k, ok := stringToKey["C-"+rest]; ok && isControlCode(k) {
				return Key{Modifier: mod &^ ModCtrl, Key: k}, nil
			}
		}

		if k, ok := stringToKey[rest]; ok {
			return Key{Modifier: mod, Key: k}, nil
		}

		if utf8.RuneCountInString(rest) == 1 {
			ch, _ := utf8.DecodeRuneInString(rest)
			if ch != utf8.RuneError {
				return Key{Modifier: mod, Key: KeyRune, Ch: ch}, nil
			}
		}

		switch {
		case strings.HasPrefix(rest, "C-"):
			mod |= ModCtrl
		case strings.HasPrefix(rest, "M-"):
			mod |= ModAlt
		case strings.HasPrefix(rest, "S-"):
			mod |= ModShift
		default:
			return Key{}, errors.Errorf("no such key %s", name)
		}
		rest = rest[2:]
	}
}

// FromEvent converts a terminal key event into a Key comparable with
// the ones produced by ToKey
func FromEvent(ev *tcell.EventKey) Key {
	return fromParts(ev.Key(), ev.Rune(), ev.Modifiers())
}

func fromParts(k tcell.Key, ch rune, m tcell.ModMask) Key {
	var mod ModifierKey
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}

	if k == KeyRune {
		// Some terminals report control characters as a rune with the
		// control modifier
		if mod&ModCtrl != 0 && ch >= 'a' && ch <= 'z' {
			return Key{Modifier: mod &^ (ModCtrl | ModShift), Key: tcell.KeyCtrlA + KeyType(ch-'a')}
		}
		// Shift is already reflected in the character
		return Key{Modifier: mod &^ ModShift, Key: KeyRune, Ch: ch}
	}

	if isControlCode(k) {
		mod &^= ModCtrl
	}
	return Key{Modifier: mod, Key: k}
}
