package ingest

import (
	"testing"
	"time"
)

func utcTimes(mins ...int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, len(mins))
	for i, m := range mins {
		out[i] = base.Add(time.Duration(m) * time.Minute)
	}
	return out
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	raw := RawColumns{Columns: map[string]any{
		"timestamp": utcTimes(0, 1),
		"open":      []float64{1, 2},
		"high":      []float64{1, 2},
		"low":       []float64{1, 2},
		"close":     []float64{1, 2},
		// volume missing
	}}
	_, err := checkSchema(raw)
	if err == nil {
		t.Fatal("expected MissingColumns error")
	}
}

func TestCheckSchema_WrongType(t *testing.T) {
	raw := RawColumns{Columns: map[string]any{
		"timestamp": utcTimes(0, 1),
		"open":      []string{"1", "2"},
		"high":      []float64{1, 2},
		"low":       []float64{1, 2},
		"close":     []float64{1, 2},
		"volume":    []float64{1, 2},
	}}
	_, err := checkSchema(raw)
	if err == nil {
		t.Fatal("expected InvalidColumnType error")
	}
}

func TestCheckSchema_OK(t *testing.T) {
	raw := RawColumns{Columns: map[string]any{
		"timestamp": utcTimes(0, 1),
		"open":      []float64{1, 2},
		"high":      []float64{1, 2},
		"low":       []float64{1, 2},
		"close":     []float64{1, 2},
		"volume":    []float64{1, 2},
		"extra":     []int{1, 2},
	}}
	c, err := checkSchema(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.timestamp) != 2 {
		t.Errorf("expected 2 rows, got %d", len(c.timestamp))
	}
}

func TestCheckTimezone_RejectsNonUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 1, 0, 0, loc),
	}
	err := checkTimezone(ts, 5)
	if err == nil {
		t.Fatal("expected NonUtcTimestamps error")
	}
}

func TestCheckTimezone_AllUTC(t *testing.T) {
	err := checkTimezone(utcTimes(0, 1, 2), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
