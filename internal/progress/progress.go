// Package progress defines the ingestion engine's progress-reporting
// contract: a small, bounded sequence of stage events delivered to a
// consumer-supplied sink. It is adapted from the teacher's in-process
// eventbus.Bus — here collapsed to a single synchronous subscriber, since
// the engine is a blocking, single-threaded call rather than a pub/sub
// system, and the contract additionally enforces a hard cap on event count
// and the set of stage names.
package progress

import (
	"time"

	"barcore/internal/barerrors"
)

// Stage identifies one of the six ingestion stages that may report
// progress. No other values are valid.
type Stage string

const (
	StageRead     Stage = "read"
	StageSort     Stage = "sort"
	StageDedupe   Stage = "dedupe"
	StageCadence  Stage = "cadence"
	StageGapFill  Stage = "gap_fill"
	StageFinalize Stage = "finalize"
)

// MaxEvents is the hard cap on progress events emitted per ingestion call.
const MaxEvents = 5

var validStages = map[Stage]bool{
	StageRead:     true,
	StageSort:     true,
	StageDedupe:   true,
	StageCadence:  true,
	StageGapFill:  true,
	StageFinalize: true,
}

// Event is one progress notification.
type Event struct {
	Stage             Stage
	Sequence          int
	Total             int
	Message           string
	MonotonicTimeNano int64
}

// Sink receives progress events. Implementations must return promptly;
// the engine makes no ordering guarantee relative to wall-clock time, only
// that the sequence reflects stage order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// NopSink discards all events. Used when a caller passes no sink.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// Reporter wraps a consumer sink and enforces the progress contract: at
// most MaxEvents emissions per call, each naming a recognized Stage.
type Reporter struct {
	sink     Sink
	start    time.Time
	sequence int
}

// NewReporter returns a Reporter over sink. A nil sink is treated as
// NopSink.
func NewReporter(sink Sink) *Reporter {
	if sink == nil {
		sink = NopSink{}
	}
	return &Reporter{sink: sink, start: time.Now()}
}

// Emit reports stage completion with message. It returns
// ProgressContractViolation if stage is not one of the six recognized
// values or if the call would exceed MaxEvents.
func (r *Reporter) Emit(stage Stage, message string) error {
	if !validStages[stage] {
		return &barerrors.ProgressContractViolation{Reason: "unknown stage: " + string(stage)}
	}
	if r.sequence >= MaxEvents {
		return &barerrors.ProgressContractViolation{Reason: "exceeded maximum of 5 progress events"}
	}
	r.sequence++
	r.sink.Emit(Event{
		Stage:             stage,
		Sequence:          r.sequence,
		Total:             MaxEvents,
		Message:           message,
		MonotonicTimeNano: time.Since(r.start).Nanoseconds(),
	})
	return nil
}

// Count returns the number of events emitted so far.
func (r *Reporter) Count() int { return r.sequence }
