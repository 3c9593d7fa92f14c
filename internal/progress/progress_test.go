package progress

import (
	"testing"
)

func TestReporter_EmitsInOrder(t *testing.T) {
	var got []Stage
	r := NewReporter(SinkFunc(func(e Event) {
		got = append(got, e.Stage)
	}))

	// Mirrors the real call pattern: gap_fill has no event of its own, it
	// is folded into the final event so a six-stage pipeline fits MaxEvents.
	stages := []Stage{StageRead, StageSort, StageDedupe, StageCadence, StageFinalize}
	for _, s := range stages {
		if err := r.Emit(s, "ok"); err != nil {
			t.Fatalf("unexpected error emitting %s: %v", s, err)
		}
	}

	if len(got) != len(stages) {
		t.Fatalf("expected %d events, got %d", len(stages), len(got))
	}
	for i, s := range stages {
		if got[i] != s {
			t.Errorf("event %d: expected %s, got %s", i, s, got[i])
		}
	}
}

func TestReporter_RejectsUnknownStage(t *testing.T) {
	r := NewReporter(NopSink{})
	err := r.Emit(Stage("bogus"), "x")
	if err == nil {
		t.Fatal("expected ProgressContractViolation, got nil")
	}
}

func TestReporter_CapsAtFiveEvents(t *testing.T) {
	r := NewReporter(NopSink{})
	for i := 0; i < MaxEvents; i++ {
		if err := r.Emit(StageRead, "x"); err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
	}
	if err := r.Emit(StageRead, "one too many"); err == nil {
		t.Fatal("expected ProgressContractViolation on 6th event")
	}
	if r.Count() != MaxEvents {
		t.Errorf("expected count %d, got %d", MaxEvents, r.Count())
	}
}

func TestReporter_NilSinkIsNop(t *testing.T) {
	r := NewReporter(nil)
	if err := r.Emit(StageFinalize, "done"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
