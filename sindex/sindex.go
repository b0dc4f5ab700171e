// Package sindex computes the S-Index: the researcher-level index over a
// portfolio of SHARE scores, counting how many datasets meet an escalating
// score threshold. Analogous to a citation-based author index.
package sindex

import (
	"sort"

	"github.com/okian/share/scoring"
	"github.com/okian/share/signal"
)

// Calc returns the largest k such that k of the given scores are >= k.
// The input order does not matter; ties break arbitrarily without affecting
// the result because the test is value-vs-rank, not identity. An empty
// portfolio yields 0, and the index can never exceed the portfolio size.
// O(n log n): one sort, one linear scan. The input slice is not modified.
func Calc(scores []float64) int {
	if len(scores) == 0 {
		return 0
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	k := 0
	for i, s := range sorted {
		if s >= float64(i+1) {
			k = i + 1
		} else {
			break // monotone non-increasing: no later rank can qualify
		}
	}
	return k
}

// FromResults computes the index over full-precision totals. Rounding
// happens only at presentation boundaries, never before thresholding.
func FromResults(results []scoring.Result) int {
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Total
	}
	return Calc(scores)
}

// FromBucket computes a sub-index variant over one bucket's sub-scores.
// The same threshold search applies unchanged.
func FromBucket(results []scoring.Result, b signal.Bucket) int {
	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = r.Bucket(b)
	}
	return Calc(scores)
}
