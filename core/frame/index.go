// Package frame provides a small labeled table type for displaying evaluation
// results. A Frame has a (possibly multi-level) row index and column index and
// renders to the same HTML table layout pandas produces, so fragments can be
// combined with other notebook output.
package frame

import (
	"strconv"
)

// Index is an ordered sequence of labels. Every label has the same number of
// levels; a single-level index has one string per label.
type Index struct {
	labels  [][]string
	nlevels int
}

// NewIndex returns a single-level index.
func NewIndex(labels ...string) Index {
	out := make([][]string, len(labels))
	for i, l := range labels {
		out[i] = []string{l}
	}
	return Index{labels: out, nlevels: 1}
}

// FromProduct returns the cartesian product of levels, the first level
// varying slowest:
//
//	FromProduct([]string{"True"}, []string{"1", "0"})
//	// ("True","1"), ("True","0")
func FromProduct(levels ...[]string) Index {
	if len(levels) == 0 {
		return Index{}
	}
	labels := [][]string{{}}
	for _, level := range levels {
		next := make([][]string, 0, len(labels)*len(level))
		for _, prefix := range labels {
			for _, l := range level {
				label := make([]string, len(prefix), len(prefix)+1)
				copy(label, prefix)
				next = append(next, append(label, l))
			}
		}
		labels = next
	}
	return Index{labels: labels, nlevels: len(levels)}
}

// RangeIndex returns the single-level index "0", "1", ..., n-1.
func RangeIndex(n int) Index {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return NewIndex(labels...)
}

// Len returns the number of labels.
func (ix Index) Len() int { return len(ix.labels) }

// NLevels returns the number of levels per label.
func (ix Index) NLevels() int { return ix.nlevels }

// Label returns a copy of the i-th label.
func (ix Index) Label(i int) []string {
	out := make([]string, len(ix.labels[i]))
	copy(out, ix.labels[i])
	return out
}

// samePrefix reports whether labels i and j agree on levels 0..level.
func (ix Index) samePrefix(i, j, level int) bool {
	for l := 0; l <= level; l++ {
		if ix.labels[i][l] != ix.labels[j][l] {
			return false
		}
	}
	return true
}

// spans returns, for each label position, how many consecutive labels share
// the prefix up to level starting there. Positions that continue a run get 0.
func (ix Index) spans(level int) []int {
	spans := make([]int, len(ix.labels))
	start := 0
	for i := range ix.labels {
		if i > 0 && ix.samePrefix(i, start, level) {
			spans[start]++
			continue
		}
		start = i
		spans[i] = 1
	}
	return spans
}
