package window

import (
	"math"
	"regexp"
	"sort"
	"testing"

	"github.com/sherlog/sherlog/filter"
	"github.com/sherlog/sherlog/line"
	"github.com/stretchr/testify/require"
)

// counting wraps an Ordered and records how many ordinals were visited
type counting struct {
	Ordered
	visited int
}

func (c *counting) AscendFrom(first int, fn func(int) bool) {
	c.Ordered.AscendFrom(first, func(n int) bool {
		c.visited++
		return fn(n)
	})
}

func (c *counting) DescendFrom(last int, fn func(int) bool) {
	c.Ordered.DescendFrom(last, func(n int) bool {
		c.visited++
		return fn(n)
	})
}

func sampleIndex() *filter.Index {
	store := line.NewStore("line1\nline2a\nline2b\nline3\nline2c\nline3\n")
	return filter.Build(store, []filter.Rule{filter.NewRule(regexp.MustCompile("line2"))})
}

func TestForward(t *testing.T) {
	t.Parallel()
	idx := sampleIndex() // {1, 2, 4}

	tests := []struct {
		name     string
		first    int
		count    int
		expected []int
	}{
		{"all", 0, Unbounded, []int{1, 2, 4}},
		{"from middle", 2, Unbounded, []int{2, 4}},
		{"bounded", 2, 1, []int{2}},
		{"from ordinal not in set", 3, Unbounded, []int{4}},
		{"more than available", 0, 10, []int{1, 2, 4}},
		{"past the end", 5, Unbounded, []int{}},
		{"far past the end", math.MaxInt, 10, []int{}},
		{"zero count", 0, 0, []int{}},
		{"negative first", -3, 2, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, Forward(idx, tt.first, tt.count))
		})
	}
}

func TestBackward(t *testing.T) {
	t.Parallel()
	idx := sampleIndex() // {1, 2, 4}

	tests := []struct {
		name     string
		last     int
		count    int
		expected []int
	}{
		{"all", 5, Unbounded, []int{1, 2, 4}},
		{"from end, bounded", math.MaxInt, 2, []int{2, 4}},
		{"from middle", 3, Unbounded, []int{1, 2}},
		{"bounded", 4, 1, []int{4}},
		{"exact first", 1, 5, []int{1}},
		{"before the first", 0, Unbounded, []int{}},
		{"negative last", -1, Unbounded, []int{}},
		{"zero count", 4, 0, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, Backward(idx, tt.last, tt.count))
		})
	}
}

func TestAscendingOrder(t *testing.T) {
	t.Parallel()
	idx := filter.NewIndex()
	for _, n := range []int{3, 7, 8, 15, 16, 23, 42, 99} {
		idx.Add(n)
	}

	for pivot := -1; pivot <= 100; pivot++ {
		for _, count := range []int{Unbounded, 1, 2, 3, 5, 50} {
			fw := Forward(idx, pivot, count)
			bw := Backward(idx, pivot, count)
			require.True(t, sort.IntsAreSorted(fw), "forward(%d, %d) = %v", pivot, count, fw)
			require.True(t, sort.IntsAreSorted(bw), "backward(%d, %d) = %v", pivot, count, bw)
			if count > 0 {
				require.LessOrEqual(t, len(fw), count)
				require.LessOrEqual(t, len(bw), count)
			}
			for _, n := range fw {
				require.GreaterOrEqual(t, n, pivot)
			}
			for _, n := range bw {
				require.LessOrEqual(t, n, pivot)
			}
		}
	}
}

func TestBackwardVisitsOnlyTheWindow(t *testing.T) {
	t.Parallel()
	idx := filter.NewIndex()
	for n := 0; n < 100_000; n++ {
		idx.Add(n)
	}

	c := &counting{Ordered: idx}
	l := Backward(c, 50_000, 80)
	require.Len(t, l, 80)
	require.Equal(t, 49_921, l[0])
	require.Equal(t, 50_000, l[79])
	require.Equal(t, 80, c.visited)

	c.visited = 0
	l = Forward(c, 50_000, 80)
	require.Len(t, l, 80)
	require.Equal(t, 80, c.visited)
}
