package ingest

import "barcore/internal/frame"

// enforceSchema builds the canonical CoreFrame from post-gap-fill columns,
// applying the optional precision-guarded downcast to each numeric column
// independently. It never silently downcasts: downcast must be requested
// by the caller, and each column is only narrowed if it round-trips within
// tolerance (frame.Column.Downcast in column.go, backed by gonum).
func enforceSchema(c frameCols, downcast bool, tolerance float64) (*frame.CoreFrame, bool) {
	f := &frame.CoreFrame{
		Timestamp: c.timestamp,
		Open:      frame.NewColumn(c.open),
		High:      frame.NewColumn(c.high),
		Low:       frame.NewColumn(c.low),
		Close:     frame.NewColumn(c.close),
		Volume:    frame.NewColumn(c.volume),
		IsGap:     c.isGap,
	}

	if !downcast {
		return f, false
	}

	applied := false
	if narrow, ok := f.Open.Downcast(tolerance); ok {
		f.Open = narrow
		applied = true
	}
	if narrow, ok := f.High.Downcast(tolerance); ok {
		f.High = narrow
		applied = true
	}
	if narrow, ok := f.Low.Downcast(tolerance); ok {
		f.Low = narrow
		applied = true
	}
	if narrow, ok := f.Close.Downcast(tolerance); ok {
		f.Close = narrow
		applied = true
	}
	if narrow, ok := f.Volume.Downcast(tolerance); ok {
		f.Volume = narrow
		applied = true
	}

	f.Downcast = applied
	return f, applied
}
