// Package window reads bounded, contiguous runs of ordinals out of an
// ordered set, in either direction.
package window

import "slices"

// Unbounded is the count that reads every available ordinal
const Unbounded = -1

// Ordered is an ordered set of ordinals that can be iterated from an
// arbitrary pivot. *filter.Index fulfills this interface.
type Ordered interface {
	AscendFrom(first int, fn func(int) bool)
	DescendFrom(last int, fn func(int) bool)
}

func capacity(count int) int {
	if count < 0 || count > 256 {
		return 256
	}
	return count
}

// Forward returns at most count ordinals >= first, in ascending order.
// A negative count means no limit.
func Forward(set Ordered, first, count int) []int {
	if count == 0 {
		return []int{}
	}

	l := make([]int, 0, capacity(count))
	set.AscendFrom(first, func(n int) bool {
		l = append(l, n)
		return count < 0 || len(l) < count
	})
	return l
}

// Backward returns at most count ordinals <= last, in ascending order.
// The ordinals are collected walking downwards from last, and the
// (already truncated) result is reversed, so the cost is proportional
// to count rather than to the size of the set.
func Backward(set Ordered, last, count int) []int {
	if count == 0 || last < 0 {
		return []int{}
	}

	l := make([]int, 0, capacity(count))
	set.DescendFrom(last, func(n int) bool {
		l = append(l, n)
		return count < 0 || len(l) < count
	})
	slices.Reverse(l)
	return l
}
