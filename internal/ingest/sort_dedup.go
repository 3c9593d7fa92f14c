package ingest

import (
	"sort"
	"time"
)

// sortChronological returns a stable ascending-by-timestamp permutation of
// row indices. A stable sort is required so the dedup step's "keep first
// occurrence" rule is well-defined for equal timestamps.
func sortChronological(c checkedColumns) []int {
	perm := make([]int, len(c.timestamp))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return c.timestamp[perm[i]].Before(c.timestamp[perm[j]])
	})
	return perm
}

// dedupeKeepFirst walks perm (already chronologically sorted) once and
// returns the sub-permutation that keeps only the first occurrence of each
// distinct timestamp, plus the count of rows removed as duplicates.
func dedupeKeepFirst(c checkedColumns, perm []int) ([]int, int) {
	if len(perm) == 0 {
		return perm, 0
	}
	kept := make([]int, 0, len(perm))
	kept = append(kept, perm[0])
	removed := 0
	for i := 1; i < len(perm); i++ {
		if c.timestamp[perm[i]].Equal(c.timestamp[perm[i-1]]) {
			removed++
			continue
		}
		kept = append(kept, perm[i])
	}
	return kept, removed
}

// gather applies permutation perm to c, producing a new checkedColumns in
// the permuted row order. This is the single pass that materializes the
// sorted+deduped batch; it touches each retained row exactly once.
func gather(c checkedColumns, perm []int) checkedColumns {
	n := len(perm)
	out := checkedColumns{
		timestamp: make([]time.Time, n),
		open:      make([]float64, n),
		high:      make([]float64, n),
		low:       make([]float64, n),
		close:     make([]float64, n),
		volume:    make([]float64, n),
	}
	for dst, src := range perm {
		out.timestamp[dst] = c.timestamp[src]
		out.open[dst] = c.open[src]
		out.high[dst] = c.high[src]
		out.low[dst] = c.low[src]
		out.close[dst] = c.close[src]
		out.volume[dst] = c.volume[src]
	}
	return out
}
