package ui

import (
	"sort"
	"strings"

	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"
	"github.com/sherlog/sherlog/internal/keyseq"
)

// unbind is the action name that removes a default binding
const unbind = "-"

// NewKeymap creates a Keymap from the default key bindings, overridden
// by cfg. cfg maps key sequences to action names; the "sherlog."
// prefix of action names may be omitted. Mapping a key to "-" removes
// its default binding.
func NewKeymap(cfg map[string]string) (*Keymap, error) {
	bindings := make(map[string]Action, len(defaultKeyBinding)+len(cfg))
	for k, a := range defaultKeyBinding {
		bindings[k] = a
	}

	for ks, name := range cfg {
		list, err := keyseq.ToKeyList(ks)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key sequence '%s'", ks)
		}

		if name == unbind {
			delete(bindings, list.String())
			continue
		}

		a, err := lookupAction(name)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid binding for '%s'", ks)
		}
		bindings[list.String()] = a
	}

	seq := keyseq.New()
	for ks, a := range bindings {
		// keys were normalized when stored, so this never fails
		list, err := keyseq.ToKeyList(ks)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid key sequence '%s'", ks)
		}
		seq.Add(list, a)
	}
	return &Keymap{seq: seq}, nil
}

func lookupAction(name string) (Action, error) {
	if !strings.HasPrefix(name, actionPrefix) {
		name = actionPrefix + name
	}
	a, ok := nameToActions[name]
	if !ok {
		return nil, errors.Errorf("unknown action %s", name)
	}
	return a, nil
}

// ActionNames returns the canonical names of every registered action
func ActionNames() []string {
	l := make([]string, 0, len(nameToActions))
	for n := range nameToActions {
		l = append(l, n)
	}
	sort.Strings(l)
	return l
}

// Lookup feeds key to the key sequence matcher. It returns the bound
// action once a sequence is complete, and nil while a sequence is in
// progress or when nothing is bound. A key that breaks a sequence is
// looked up again on its own.
func (km *Keymap) Lookup(key keyseq.Key) Action {
	chained := km.seq.InMiddleOfChain()
	v, err := km.seq.AcceptKey(key)
	if errors.Is(err, keyseq.ErrNoMatch) && chained {
		v, err = km.seq.AcceptKey(key)
	}

	switch {
	case err == nil:
		if a, ok := v.(Action); ok {
			return a
		}
	case errors.Is(err, keyseq.ErrInSequence):
		if pdebug.Enabled {
			pdebug.Printf("Keymap.Lookup: %s is part of a sequence", key)
		}
	}
	return nil
}
