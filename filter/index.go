package filter

import (
	"github.com/google/btree"
	"github.com/lestrrat-go/pdebug"
)

const btreeDegree = 32

// NewIndex creates an empty Index
func NewIndex() *Index {
	return &Index{tree: btree.NewG[int](btreeDegree, btree.Less[int]())}
}

// Build tests every line in src against every applicable rule, and
// returns the index of lines that passed all of them. If no rule
// applies, every line passes.
func Build(src Lines, rules []Rule) *Index {
	if pdebug.Enabled {
		g := pdebug.Marker("filter.Build (%d lines, %d rules)", src.Len(), len(rules))
		defer g.End()
	}

	applied := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Applies() {
			applied = append(applied, r)
		}
	}

	idx := NewIndex()
	n := src.Len()
	for i := 0; i < n; i++ {
		v, _ := src.At(i)
		if passes(v, applied) {
			idx.tree.ReplaceOrInsert(i)
		}
	}
	return idx
}

func passes(s string, rules []Rule) bool {
	for _, r := range rules {
		if !r.Match(s) {
			return false
		}
	}
	return true
}

// Add adds ordinal n to the index
func (idx *Index) Add(n int) {
	idx.tree.ReplaceOrInsert(n)
}

// Len returns the number of ordinals in the index
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Has reports whether ordinal n passed the filters
func (idx *Index) Has(n int) bool {
	return idx.tree.Has(n)
}

// Min returns the smallest ordinal in the index
func (idx *Index) Min() (int, bool) {
	return idx.tree.Min()
}

// Max returns the largest ordinal in the index
func (idx *Index) Max() (int, bool) {
	return idx.tree.Max()
}

// AscendFrom calls fn for every ordinal >= first, in ascending order,
// until fn returns false
func (idx *Index) AscendFrom(first int, fn func(int) bool) {
	idx.tree.AscendGreaterOrEqual(first, fn)
}

// DescendFrom calls fn for every ordinal <= last, in descending order,
// until fn returns false
func (idx *Index) DescendFrom(last int, fn func(int) bool) {
	idx.tree.DescendLessOrEqual(last, fn)
}

// Ordinals returns all ordinals in the index, in ascending order
func (idx *Index) Ordinals() []int {
	l := make([]int, 0, idx.tree.Len())
	idx.tree.Ascend(func(n int) bool {
		l = append(l, n)
		return true
	})
	return l
}
