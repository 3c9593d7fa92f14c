package ingest

import (
	"time"

	"barcore/internal/barerrors"
)

// cadenceResult carries the measurements the gap filler needs, computed
// once by the cadence validator.
type cadenceResult struct {
	expectedIntervals int64
	actualIntervals    int64
	missingIntervals   int64
	deviationPct       float64
}

// validateCadence computes the deviation between the expected and actual
// number of intervals in a sorted, deduped timestamp column, and fails if
// the deviation exceeds maxDeviationPct.
func validateCadence(ts []time.Time, cadence time.Duration, maxDeviationPct float64) (cadenceResult, error) {
	if len(ts) < 2 {
		return cadenceResult{}, nil
	}

	span := ts[len(ts)-1].Sub(ts[0])
	expected := int64(span / cadence)
	actual := int64(len(ts) - 1)
	missing := expected - actual

	var deviationPct float64
	if expected > 0 {
		deviationPct = 100 * float64(missing) / float64(expected)
	}

	result := cadenceResult{
		expectedIntervals: expected,
		actualIntervals:   actual,
		missingIntervals:  missing,
		deviationPct:      deviationPct,
	}

	if deviationPct > maxDeviationPct {
		return result, &barerrors.CadenceDeviation{
			ExpectedIntervals: expected,
			MissingIntervals:  missing,
			DeviationPct:      deviationPct,
		}
	}
	return result, nil
}
