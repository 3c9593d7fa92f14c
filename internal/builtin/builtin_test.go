package builtin

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"barcore/internal/frame"
	"barcore/internal/indicator"
)

func coreFrameOf(closes []float64) *frame.CoreFrame {
	n := len(closes)
	ts := make([]time.Time, n)
	gap := make([]bool, n)
	return &frame.CoreFrame{
		Timestamp: ts,
		Open:      frame.NewColumn(closes),
		High:      frame.NewColumn(closes),
		Low:       frame.NewColumn(closes),
		Close:     frame.NewColumn(closes),
		Volume:    frame.NewColumn(make([]float64, n)),
		IsGap:     gap,
	}
}

func TestInit_RegistersAllThree(t *testing.T) {
	reg := indicator.New()
	if err := Init(reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := reg.List()
	want := map[string]bool{"ema": true, "atr": true, "stoch_rsi": true}
	if len(names) != 3 {
		t.Fatalf("expected 3 indicators, got %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected indicator %q registered", n)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	reg := indicator.New()
	if err := Init(reg); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(reg); err != nil {
		t.Fatalf("second Init should be a no-op, got error: %v", err)
	}
	if len(reg.List()) != 3 {
		t.Fatalf("expected registry to still hold exactly 3 indicators, got %v", reg.List())
	}
}

func TestComputeEMA_WarmupAndSeed(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	core := coreFrameOf(closes)
	ctx := indicator.NewContext(core)

	cols, err := computeEMA(ctx, indicator.Params{"period": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ema := cols["ema"].F64()

	for i := 0; i < 2; i++ {
		if !math.IsNaN(ema[i]) {
			t.Errorf("row %d: expected NaN warmup, got %v", i, ema[i])
		}
	}
	require.Equal(t, 2.0, ema[2], "seed row should be the simple mean of the first period closes")
	alpha := 2.0 / 4.0
	wantRow3 := alpha*4 + (1-alpha)*2
	require.InDelta(t, wantRow3, ema[3], 1e-12)
}

func TestComputeEMA_InsufficientRows(t *testing.T) {
	core := coreFrameOf([]float64{1, 2})
	ctx := indicator.NewContext(core)
	cols, err := computeEMA(ctx, indicator.Params{"period": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range cols["ema"].F64() {
		if !math.IsNaN(v) {
			t.Errorf("row %d: expected NaN when rows < period, got %v", i, v)
		}
	}
}

func TestComputeATR_WarmupAndGapPolicy(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 8, 7, 6, 5, 11, 12, 13, 14, 15, 16}
	core := coreFrameOf(closes)
	core.IsGap[10] = true // synthetic bar inserted mid-series
	ctx := indicator.NewContext(core)

	cols, err := computeATR(ctx, indicator.Params{"period": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	atr := cols["atr"].F64()

	for i := 0; i <= 4; i++ {
		if !math.IsNaN(atr[i]) {
			t.Errorf("row %d: expected NaN warmup, got %v", i, atr[i])
		}
	}
	if math.IsNaN(atr[5]) {
		t.Error("row 5: expected seeded value, got NaN")
	}
	if !math.IsNaN(atr[10]) {
		t.Error("gap row 10: expected NaN per gap policy")
	}
	if math.IsNaN(atr[11]) {
		t.Error("row 11: expected recurrence to resume after the gap row")
	}
}

func TestComputeStochRSI_BoundedRange(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 10 + float64(i%7) - float64((i*3)%5)
	}
	core := coreFrameOf(closes)
	ctx := indicator.NewContext(core)

	cols, err := computeStochRSI(ctx, indicator.Params{"period": 14})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vals := cols["stoch_rsi"].F64()

	warmupEnd := 2*14 - 1
	for i := 0; i < warmupEnd; i++ {
		if !math.IsNaN(vals[i]) {
			t.Errorf("row %d: expected NaN warmup, got %v", i, vals[i])
		}
	}
	for i := warmupEnd; i < len(vals); i++ {
		if math.IsNaN(vals[i]) {
			t.Errorf("row %d: unexpected NaN past warmup", i)
			continue
		}
		require.GreaterOrEqual(t, vals[i], -1e-9, "row %d", i)
		require.LessOrEqual(t, vals[i], 1+1e-9, "row %d", i)
	}
}
