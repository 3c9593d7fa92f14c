package builtin

import (
	"fmt"
	"math"

	"barcore/internal/frame"
	"barcore/internal/indicator"
)

const atrDefaultPeriod = 14

// atrSpec returns Wilder's average true range over high/low/close.
// Provides "atr". The first period rows are NaN (true range needs a prior
// close, and the Wilder average itself needs period samples to seed).
//
// Gap rows get a second NaN policy beyond plain warmup: a gap-filled bar
// carries open=high=low=close equal to the last real close (see
// internal/ingest's forward-fill), so its true range is near zero and
// would pull a recurrence-based average toward zero regardless of actual
// volatility. Rather than let a synthetic bar corrupt the running smooth,
// atr reports NaN for every is_gap row and leaves the smoothed value
// unchanged, resuming the recurrence from the next real bar.
func atrSpec() indicator.Spec {
	return indicator.Spec{
		Name:          "atr",
		Requires:      []string{"high", "low", "close"},
		Provides:      []string{"atr"},
		Version:       "1",
		DefaultParams: indicator.Params{"period": atrDefaultPeriod},
		Compute:       computeATR,
	}
}

func computeATR(ctx *indicator.Context, params indicator.Params) (map[string]frame.Column, error) {
	period := paramInt(params, "period", atrDefaultPeriod)
	if period < 1 {
		return nil, fmt.Errorf("atr: period must be >= 1, got %d", period)
	}

	highCol, _ := ctx.Column("high")
	lowCol, _ := ctx.Column("low")
	closeCol, _ := ctx.Column("close")
	high, low, close := highCol.F64(), lowCol.F64(), closeCol.F64()
	n := len(high)
	isGap := ctx.Core.IsGap

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n == 0 {
		return map[string]frame.Column{"atr": frame.NewColumn(out)}, nil
	}

	tr := make([]float64, n)
	tr[0] = high[0] - low[0]
	for i := 1; i < n; i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - close[i-1])
		lc := math.Abs(low[i] - close[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	if n <= period {
		return map[string]frame.Column{"atr": frame.NewColumn(out)}, nil
	}

	var seed float64
	for i := 1; i <= period; i++ {
		seed += tr[i]
	}
	seed /= float64(period)
	prev := seed
	if isGap != nil && isGap[period] {
		out[period] = math.NaN()
	} else {
		out[period] = prev
	}

	for i := period + 1; i < n; i++ {
		if isGap != nil && isGap[i] {
			out[i] = math.NaN()
			continue
		}
		prev = (prev*float64(period-1) + tr[i]) / float64(period)
		out[i] = prev
	}

	return map[string]frame.Column{"atr": frame.NewColumn(out)}, nil
}
