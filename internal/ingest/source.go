// Package ingest implements the ingestion pipeline: read, sort,
// deduplicate, validate cadence, fill gaps, enforce schema, and emit
// metrics, in columnar batch mode with an optional row-iterator view.
// It is modeled on the teacher's internal/ingester/service.go shape: a
// small set of stateless stage functions invoked in sequence by one
// orchestrating entry point, rather than an object hierarchy.
package ingest

import "time"

// RequiredColumns are the six columns every Source must be able to
// produce. Extra columns returned by a Source are ignored.
var RequiredColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// RawColumns is the loosely-typed columnar batch a Source hands to the
// pipeline, before the schema check has verified presence and type. Values
// are typically []time.Time (for "timestamp") or []float64 (for the
// numeric columns); any other concrete type fails the schema check with
// InvalidColumnType. This mirrors the spec's input contract of a raw,
// not-yet-validated columnar batch from an out-of-core adapter.
type RawColumns struct {
	Columns map[string]any
}

// Source is the abstract producer of a raw columnar batch. CSV/Parquet
// readers and similar out-of-core adapters implement this; they are
// external collaborators and not specified here.
type Source interface {
	Read() (RawColumns, error)
}

// SliceSource is a trivial in-memory Source, useful for tests and for
// callers who already have columnar slices in hand.
type SliceSource struct {
	Timestamp                        []time.Time
	Open, High, Low, Close, Volume   []float64
	Extra                            map[string]any
}

func (s SliceSource) Read() (RawColumns, error) {
	cols := map[string]any{
		"timestamp": s.Timestamp,
		"open":      s.Open,
		"high":      s.High,
		"low":       s.Low,
		"close":     s.Close,
		"volume":    s.Volume,
	}
	for k, v := range s.Extra {
		cols[k] = v
	}
	return RawColumns{Columns: cols}, nil
}
