package search

import (
	"regexp"

	"github.com/google/btree"
	"github.com/lestrrat-go/pdebug"
)

const btreeDegree = 32

func lessEntry(a, b entry) bool {
	return a.ordinal < b.ordinal
}

// NewIndex creates an empty Index
func NewIndex() *Index {
	return &Index{tree: btree.NewG[entry](btreeDegree, lessEntry)}
}

// Build scans every line of src for non-overlapping matches of re.
// A nil re produces an empty index. Empty matches are not recorded.
func Build(src Lines, re *regexp.Regexp) *Index {
	idx := NewIndex()
	if re == nil {
		return idx
	}

	if pdebug.Enabled {
		g := pdebug.Marker("search.Build (%d lines, pattern %s)", src.Len(), re)
		defer g.End()
	}

	n := src.Len()
	for i := 0; i < n; i++ {
		v, _ := src.At(i)
		if ranges := FindRanges(v, re); len(ranges) > 0 {
			idx.tree.ReplaceOrInsert(entry{ordinal: i, ranges: ranges})
			idx.count += len(ranges)
		}
	}
	return idx
}

// FindRanges returns the byte ranges of the non-empty, non-overlapping
// matches of re in s, from left to right
func FindRanges(s string, re *regexp.Regexp) []Range {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return nil
	}

	ranges := make([]Range, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		ranges = append(ranges, Range{Start: loc[0], End: loc[1]})
	}
	if len(ranges) == 0 {
		return nil
	}
	return ranges
}

// Len returns the number of lines with at least one match
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Count returns the total number of matches
func (idx *Index) Count() int {
	return idx.count
}

// Matches returns the match ranges on line n
func (idx *Index) Matches(n int) ([]Range, bool) {
	e, ok := idx.tree.Get(entry{ordinal: n})
	if !ok {
		return nil, false
	}
	return e.ranges, true
}

// Next returns the first line at or after from that has a match and is
// a member of in. A nil in accepts every line.
func (idx *Index) Next(from int, in Membership) (int, bool) {
	if from < 0 {
		from = 0
	}

	found := -1
	idx.tree.AscendGreaterOrEqual(entry{ordinal: from}, func(e entry) bool {
		if in != nil && !in.Has(e.ordinal) {
			return true
		}
		found = e.ordinal
		return false
	})
	return found, found >= 0
}

// Prev returns the last line at or before from that has a match and is
// a member of in. A nil in accepts every line.
func (idx *Index) Prev(from int, in Membership) (int, bool) {
	if from < 0 {
		return 0, false
	}

	found := -1
	idx.tree.DescendLessOrEqual(entry{ordinal: from}, func(e entry) bool {
		if in != nil && !in.Has(e.ordinal) {
			return true
		}
		found = e.ordinal
		return false
	})
	return found, found >= 0
}

// Ordinals returns the lines with matches, in ascending order
func (idx *Index) Ordinals() []int {
	l := make([]int, 0, idx.tree.Len())
	idx.tree.Ascend(func(e entry) bool {
		l = append(l, e.ordinal)
		return true
	})
	return l
}
