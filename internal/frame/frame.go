// Package frame defines the core columnar data model: CoreBar, CoreFrame,
// and the canonical column set and order that every stage of the
// ingestion pipeline and the enrichment engine must respect.
//
// Extension point: a multi-symbol variant would add a Symbol column here
// and extend CanonicalColumns accordingly; per spec this is a documented
// extension point only, deliberately not implemented in this package.
package frame

import "time"

// CanonicalColumns is the exact, ordered core column set every CoreFrame
// must expose after ingestion and that every EnrichedFrame must preserve
// byte-for-byte.
var CanonicalColumns = []string{"timestamp", "open", "high", "low", "close", "volume", "is_gap"}

// CoreBar is a single OHLCV observation.
type CoreBar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	IsGap     bool
}

// CoreFrame is the columnar, ordered, gap-marked dataset produced by
// ingestion. Once returned from the ingestion pipeline it must never be
// mutated; the enrichment engine reads its columns in place, without
// copying them, and verifies this via a post-hash check rather than
// language-level immutability.
type CoreFrame struct {
	Timestamp []time.Time
	Open      Column
	High      Column
	Low       Column
	Close     Column
	Volume    Column
	IsGap     []bool

	// Downcast records whether the price columns are stored as float32.
	// Kept alongside the frame so callers need not probe column widths.
	Downcast bool
}

// Len returns the number of rows in the frame.
func (f *CoreFrame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Timestamp)
}

// At materializes the row at index i as a CoreBar. This is the iterator
// view's primitive and must never be used internally in a loop over the
// whole frame — that would reintroduce the per-row scalar path the engine
// forbids on the performance-critical path.
func (f *CoreFrame) At(i int) CoreBar {
	return CoreBar{
		Timestamp: f.Timestamp[i],
		Open:      f.Open.At(i),
		High:      f.High.At(i),
		Low:       f.Low.At(i),
		Close:     f.Close.At(i),
		Volume:    f.Volume.At(i),
		IsGap:     f.IsGap[i],
	}
}

// Clone returns a deep copy of the frame, suitable as the enrichment
// engine's copy-on-write working frame.
func (f *CoreFrame) Clone() *CoreFrame {
	ts := make([]time.Time, len(f.Timestamp))
	copy(ts, f.Timestamp)
	gap := make([]bool, len(f.IsGap))
	copy(gap, f.IsGap)
	return &CoreFrame{
		Timestamp: ts,
		Open:      f.Open.Clone(),
		High:      f.High.Clone(),
		Low:       f.Low.Clone(),
		Close:     f.Close.Clone(),
		Volume:    f.Volume.Clone(),
		IsGap:     gap,
		Downcast:  f.Downcast,
	}
}
