package builtin

import (
	"fmt"
	"math"

	"barcore/internal/frame"
	"barcore/internal/indicator"
)

// emaDefaultPeriod is used when a caller requests "ema" without a "period"
// override.
const emaDefaultPeriod = 20

// emaSpec returns the exponential moving average of the close column.
// Provides a single "ema" column; requesting two different periods in
// the same registry collides, since Provides is not period-namespaced.
// The first period-1 rows are NaN
// (insufficient warmup history); row period-1 seeds from the simple mean
// of the first period closes, and every later value is a genuine
// recurrence, so — unlike the engine's columnar stages — this cannot be
// expressed as a single vectorized pass: each output depends on the
// immediately preceding output, not just on the input column.
func emaSpec() indicator.Spec {
	return indicator.Spec{
		Name:          "ema",
		Requires:      []string{"close"},
		Provides:      []string{"ema"},
		Version:       "1",
		DefaultParams: indicator.Params{"period": emaDefaultPeriod},
		Compute:       computeEMA,
	}
}

func computeEMA(ctx *indicator.Context, params indicator.Params) (map[string]frame.Column, error) {
	period := paramInt(params, "period", emaDefaultPeriod)
	if period < 1 {
		return nil, fmt.Errorf("ema: period must be >= 1, got %d", period)
	}

	closeCol, ok := ctx.Column("close")
	if !ok {
		return nil, fmt.Errorf("ema: close column unavailable")
	}
	close := closeCol.F64()
	n := len(close)

	out := make([]float64, n)
	for i := 0; i < n && i < period-1; i++ {
		out[i] = math.NaN()
	}
	if n < period {
		return map[string]frame.Column{"ema": frame.NewColumn(out)}, nil
	}

	var seed float64
	for i := 0; i < period; i++ {
		seed += close[i]
	}
	seed /= float64(period)
	out[period-1] = seed

	alpha := 2.0 / float64(period+1)
	prev := seed
	for i := period; i < n; i++ {
		prev = alpha*close[i] + (1-alpha)*prev
		out[i] = prev
	}

	return map[string]frame.Column{"ema": frame.NewColumn(out)}, nil
}
