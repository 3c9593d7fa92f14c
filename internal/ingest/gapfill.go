package ingest

import "time"

// fillGaps reindexes a sorted, deduped, cadence-validated batch onto the
// full grid t0, t0+cadence, ..., tN, synthesizing rows for missing grid
// points. Synthesized rows carry open=high=low=close=previous real close,
// volume=0, is_gap=true. Existing rows carry is_gap=false.
//
// This is a single forward pass over the grid (one grid index advances
// exactly once per iteration, one input index advances only on a match):
// O(n) in the output size, no re-scanning, no boxing of rows into
// interface values — the Go equivalent of a vectorized reindex.
func fillGaps(c checkedColumns, cadence time.Duration, expectedIntervals int64) frameCols {
	if len(c.timestamp) == 0 {
		return frameCols{}
	}

	n := int(expectedIntervals) + 1
	out := frameCols{
		timestamp: make([]time.Time, n),
		open:      make([]float64, n),
		high:      make([]float64, n),
		low:       make([]float64, n),
		close:     make([]float64, n),
		volume:    make([]float64, n),
		isGap:     make([]bool, n),
	}

	t0 := c.timestamp[0]
	srcIdx := 0
	lastClose := c.close[0]

	for i := 0; i < n; i++ {
		gridTime := t0.Add(time.Duration(i) * cadence)
		out.timestamp[i] = gridTime

		if srcIdx < len(c.timestamp) && c.timestamp[srcIdx].Equal(gridTime) {
			out.open[i] = c.open[srcIdx]
			out.high[i] = c.high[srcIdx]
			out.low[i] = c.low[srcIdx]
			out.close[i] = c.close[srcIdx]
			out.volume[i] = c.volume[srcIdx]
			out.isGap[i] = false
			lastClose = c.close[srcIdx]
			srcIdx++
			continue
		}

		out.open[i] = lastClose
		out.high[i] = lastClose
		out.low[i] = lastClose
		out.close[i] = lastClose
		out.volume[i] = 0
		out.isGap[i] = true
	}

	return out
}

// frameCols is the post-gap-fill columnar layout, still in plain float64
// storage (downcast, if any, happens in the schema-enforcement stage).
type frameCols struct {
	timestamp                      []time.Time
	open, high, low, close, volume []float64
	isGap                          []bool
}
