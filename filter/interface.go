package filter

import (
	"regexp"
	"sync"
	"time"

	"github.com/google/btree"
)

// Lines is the source of text that an Index is built from.
// *line.Store fulfills this interface.
type Lines interface {
	Len() int
	At(int) (string, bool)
}

// CaseMode controls how the case of a pattern affects matching
type CaseMode int

const (
	CaseSensitive CaseMode = iota
	IgnoreCase
	// SmartCase ignores case unless the pattern contains an
	// upper case character
	SmartCase
)

// Rule is a single filter rule. A line passes the rule when the rule is
// active and the pattern matching the line differs from Negate.
type Rule struct {
	Pattern *regexp.Regexp
	Negate  bool
	Active  bool
}

// Index is the ordered set of line ordinals that passed every active
// Rule. It is always sorted from smallest to largest ordinal.
type Index struct {
	tree *btree.BTreeG[int]
}

// InvalidPatternError is returned when a pattern fails to compile.
type InvalidPatternError struct {
	Pattern string
	err     error
}

// Compiler compiles patterns and remembers the result for a while, so
// that re-applying the same rules (e.g. while editing one of them) does
// not compile every pattern again.
type Compiler struct {
	compiled  map[compileKey]compiledPattern
	mutex     sync.Mutex
	threshold time.Duration
}

type compileKey struct {
	text string
	mode CaseMode
}

type compiledPattern struct {
	re       *regexp.Regexp
	lastUsed time.Time
}
