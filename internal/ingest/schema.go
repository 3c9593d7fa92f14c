package ingest

import (
	"time"

	"barcore/internal/barerrors"
)

// checkedColumns holds the raw batch after the schema check has confirmed
// presence and type, but before timezone validation, sorting, or dedup.
type checkedColumns struct {
	timestamp                      []time.Time
	open, high, low, close, volume []float64
}

// checkSchema verifies that raw has all RequiredColumns present with the
// expected concrete types.
func checkSchema(raw RawColumns) (checkedColumns, error) {
	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := raw.Columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return checkedColumns{}, &barerrors.MissingColumns{Missing: missing, Expected: RequiredColumns}
	}

	ts, ok := raw.Columns["timestamp"].([]time.Time)
	if !ok {
		return checkedColumns{}, &barerrors.InvalidColumnType{Column: "timestamp", Expected: "[]time.Time", Actual: goType(raw.Columns["timestamp"])}
	}

	numeric := make(map[string][]float64, 5)
	for _, name := range []string{"open", "high", "low", "close", "volume"} {
		col, ok := raw.Columns[name].([]float64)
		if !ok {
			return checkedColumns{}, &barerrors.InvalidColumnType{Column: name, Expected: "[]float64", Actual: goType(raw.Columns[name])}
		}
		if len(col) != len(ts) {
			return checkedColumns{}, &barerrors.InvalidColumnType{Column: name, Expected: "same length as timestamp", Actual: "mismatched length"}
		}
		numeric[name] = col
	}

	return checkedColumns{
		timestamp: ts,
		open:      numeric["open"],
		high:      numeric["high"],
		low:       numeric["low"],
		close:     numeric["close"],
		volume:    numeric["volume"],
	}, nil
}

// checkTimezone verifies every timestamp is UTC-qualified: its Location
// must be the time.UTC singleton, not time.Local or any other zone.
func checkTimezone(ts []time.Time, sampleSize int) error {
	var anyOffender bool
	var offenders []string
	for _, t := range ts {
		if t.Location() != time.UTC {
			anyOffender = true
			if len(offenders) < sampleSize {
				offenders = append(offenders, t.Format(time.RFC3339))
			}
		}
	}
	if anyOffender {
		return &barerrors.NonUtcTimestamps{SampleOffenders: offenders}
	}
	return nil
}

func goType(v any) string {
	if v == nil {
		return "<nil>"
	}
	switch v.(type) {
	case []time.Time:
		return "[]time.Time"
	case []float64:
		return "[]float64"
	case []float32:
		return "[]float32"
	case []int:
		return "[]int"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}
