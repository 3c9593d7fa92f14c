package builtin

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"barcore/internal/frame"
	"barcore/internal/indicator"
)

const stochRSIDefaultPeriod = 14

// stochRSISpec returns the stochastic oscillator applied to Wilder's RSI of
// the close column, scaled to [0, 1]. Provides "stoch_rsi".
//
// Two warmup phases stack: RSI itself needs period samples to seed its
// Wilder average (NaN for the first period rows), and the stochastic
// transform then needs a trailing period-sized window of RSI values before
// it can report a min/max (NaN until the 2*period-1'th row). The rolling
// min/max over that window is computed with gonum's floats.Min/Max per
// window rather than a hand-rolled comparison loop.
func stochRSISpec() indicator.Spec {
	return indicator.Spec{
		Name:          "stoch_rsi",
		Requires:      []string{"close"},
		Provides:      []string{"stoch_rsi"},
		Version:       "1",
		DefaultParams: indicator.Params{"period": stochRSIDefaultPeriod},
		Compute:       computeStochRSI,
	}
}

func computeStochRSI(ctx *indicator.Context, params indicator.Params) (map[string]frame.Column, error) {
	period := paramInt(params, "period", stochRSIDefaultPeriod)
	if period < 1 {
		return nil, fmt.Errorf("stoch_rsi: period must be >= 1, got %d", period)
	}

	closeCol, ok := ctx.Column("close")
	if !ok {
		return nil, fmt.Errorf("stoch_rsi: close column unavailable")
	}
	close := closeCol.F64()
	n := len(close)

	rsi := make([]float64, n)
	for i := range rsi {
		rsi[i] = math.NaN()
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if n <= period {
		return map[string]frame.Column{"stoch_rsi": frame.NewColumn(out)}, nil
	}

	var seedGain, seedLoss float64
	for i := 1; i <= period; i++ {
		diff := close[i] - close[i-1]
		if diff > 0 {
			seedGain += diff
		} else {
			seedLoss += -diff
		}
	}
	seedGain /= float64(period)
	seedLoss /= float64(period)
	rsi[period] = rsiFromAverages(seedGain, seedLoss)

	avgGain, avgLoss := seedGain, seedLoss
	for i := period + 1; i < n; i++ {
		diff := close[i] - close[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		rsi[i] = rsiFromAverages(avgGain, avgLoss)
	}

	for i := 2*period - 1; i < n; i++ {
		window := rsi[i-period+1 : i+1]
		lo := floats.Min(window)
		hi := floats.Max(window)
		if hi == lo {
			out[i] = 0
			continue
		}
		out[i] = (rsi[i] - lo) / (hi - lo)
	}

	return map[string]frame.Column{"stoch_rsi": frame.NewColumn(out)}, nil
}

func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
