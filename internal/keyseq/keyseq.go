package keyseq

import (
	"errors"
	"strconv"
	"strings"
	"sync"
)

var ErrInSequence = errors.New("expected a key sequence")
var ErrNoMatch = errors.New("could not match key to any action")

type ModifierKey int

const (
	ModNone  ModifierKey = 0
	ModAlt   ModifierKey = 1 << 0 // 0x01
	ModCtrl  ModifierKey = 1 << 1 // 0x02
	ModShift ModifierKey = 1 << 2 // 0x04
)

// Key is data in one trie node in the key sequence
type Key struct {
	Modifier ModifierKey // Alt, etc
	Key      KeyType
	Ch       rune
}

// KeyList is just the list of keys
type KeyList []Key

func (kl KeyList) String() string {
	list := make([]string, len(kl))
	for i := range kl {
		list[i] = kl[i].String()
	}
	return strings.Join(list, ",")
}

func (m ModifierKey) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "C")
	}
	if m&ModShift != 0 {
		parts = append(parts, "S")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

// String returns the name of the key in the same notation ToKey
// accepts
func (k Key) String() string {
	var s string
	if m := k.Modifier.String(); m != "" {
		s += m + "-"
	}

	switch {
	case k.Key == KeyRune && k.Ch == ' ':
		s += "Space"
	case k.Key == KeyRune:
		s += string(k.Ch)
	default:
		if n, ok := keyToString[k.Key]; ok {
			s += n
		} else {
			s += "Key(" + strconv.Itoa(int(k.Key)) + ")"
		}
	}
	return s
}

// NewKeyFromKey creates a Key for a special (non-character) key
func NewKeyFromKey(k KeyType) Key {
	return Key{Key: k}
}

// NewKeyFromRune creates a Key for a character
func NewKeyFromRune(r rune) Key {
	return Key{Key: KeyRune, Ch: r}
}

// Compare orders keys by modifier, then key code, then character
func (k Key) Compare(x Key) int {
	if k.Modifier < x.Modifier {
		return -1
	} else if k.Modifier > x.Modifier {
		return 1
	}

	if k.Key < x.Key {
		return -1
	} else if k.Key > x.Key {
		return 1
	}

	if k.Ch < x.Ch {
		return -1
	} else if k.Ch > x.Ch {
		return 1
	}

	return 0
}

func (kl KeyList) Equals(x KeyList) bool {
	if len(kl) != len(x) {
		return false
	}

	for i := range kl {
		if kl[i].Compare(x[i]) != 0 {
			return false
		}
	}
	return true
}

// Keyseq matches successive keys against registered key sequences
type Keyseq struct {
	trie    *Trie
	current *Node
	mutex   sync.Mutex
}

func New() *Keyseq {
	return &Keyseq{
		trie: NewTrie(),
	}
}

// Add registers v to be returned when the keys in list are accepted in
// order
func (k *Keyseq) Add(list KeyList, v any) {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.trie.Put(list, v)
}

// Clear removes every registered sequence
func (k *Keyseq) Clear() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.trie = NewTrie()
	k.current = nil
}

// Size returns the number of registered sequences
func (k *Keyseq) Size() int {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.trie.Len()
}

func (k *Keyseq) InMiddleOfChain() bool {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return k.current != nil && k.current != k.trie.Root()
}

func (k *Keyseq) CancelChain() {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	k.current = nil
}

func (k *Keyseq) currentNL() *Node {
	if k.current == nil {
		return k.trie.Root()
	}
	return k.current
}

// AcceptKey feeds one key to the matcher. It returns the registered
// value when key completes a sequence, ErrInSequence when key is a
// prefix of a longer sequence, and ErrNoMatch otherwise. A key that
// matches nothing resets the chain.
func (k *Keyseq) AcceptKey(key Key) (any, error) {
	k.mutex.Lock()
	defer k.mutex.Unlock()

	n := k.currentNL().Get(key)
	if n == nil {
		k.current = nil
		return nil, ErrNoMatch
	}

	// The longest sequence always wins: with both "g" and "g,g"
	// registered, "g" alone never fires
	if n.HasChildren() {
		k.current = n
		return nil, ErrInSequence
	}

	k.current = nil
	if !n.HasValue() {
		return nil, ErrNoMatch
	}
	return n.Value(), nil
}
