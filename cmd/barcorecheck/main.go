// Command barcorecheck runs the ingestion and enrichment engine against a
// small synthetic dataset and logs the resulting metrics. It exists for
// developers to sanity-check a build, not as a production entry point.
package main

import (
	"flag"
	"log"
	"time"

	"barcore/internal/builtin"
	"barcore/internal/config"
	"barcore/internal/enrich"
	"barcore/internal/indicator"
	"barcore/internal/ingest"
	"barcore/internal/progress"
)

func main() {
	rows := flag.Int("rows", 500, "number of synthetic bars to generate")
	strict := flag.Bool("strict", false, "run enrichment in strict mode")
	flag.Parse()

	cfg := config.Default()
	src := syntheticSource(*rows)

	sink := progress.SinkFunc(func(e progress.Event) {
		log.Printf("progress %d/%d stage=%s msg=%q", e.Sequence, e.Total, e.Stage, e.Message)
	})

	result, err := ingest.Ingest(src, cfg.Cadence(), ingest.ModeColumnar, false, cfg.Options(), sink)
	if err != nil {
		log.Fatalf("ingest: %v", err)
	}
	log.Printf("ingested rows_in=%d rows_out=%d duplicates=%d gaps=%d runtime=%.6fs throughput=%.1f/s",
		result.Metrics.RowsIn, result.Metrics.RowsOut, result.Metrics.DuplicatesRemoved,
		result.Metrics.GapsInserted, result.Metrics.RuntimeSeconds, result.Metrics.ThroughputRowsPerSec)

	reg := indicator.New()
	if err := builtin.Init(reg); err != nil {
		log.Fatalf("indicator init: %v", err)
	}

	enriched, err := enrich.Enrich(result.Frame, enrich.EnrichmentRequest{
		Indicators: []string{"ema", "atr", "stoch_rsi"},
		Strict:     *strict,
	}, reg, sink)
	if err != nil {
		log.Fatalf("enrich: %v", err)
	}
	log.Printf("enriched applied=%v failed=%v", enriched.IndicatorsApplied, enriched.FailedIndicators)
}

func syntheticSource(n int) ingest.SliceSource {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := make([]time.Time, n)
	open, high, low, close, volume := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		ts[i] = base.Add(time.Duration(i) * time.Minute)
		drift := float64(i%7) - 3
		price += drift * 0.05
		open[i] = price
		high[i] = price + 0.3
		low[i] = price - 0.3
		close[i] = price + drift*0.02
		volume[i] = 1000 + float64(i%13)*25
	}
	return ingest.SliceSource{Timestamp: ts, Open: open, High: high, Low: low, Close: close, Volume: volume}
}
