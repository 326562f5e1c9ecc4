package search

import "github.com/google/btree"

// Lines is the source of text that an Index is built from
type Lines interface {
	Len() int
	At(int) (string, bool)
}

// Membership tells whether a line is currently visible. Search results
// on lines that are not members are skipped.
type Membership interface {
	Has(int) bool
}

// Range is the location of a single match within a line, as byte
// offsets [Start, End)
type Range struct {
	Start int
	End   int
}

// Index maps line ordinals to the matches of a pattern within that
// line. Only lines with at least one match are present.
type Index struct {
	tree  *btree.BTreeG[entry]
	count int
}

type entry struct {
	ordinal int
	ranges  []Range
}
