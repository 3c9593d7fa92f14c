package ingest

import (
	"time"

	"barcore/internal/barerrors"
	"barcore/internal/frame"
	"barcore/internal/progress"
)

// Mode selects the ingestion pipeline's output shape.
type Mode string

const (
	// ModeColumnar returns the full CoreFrame.
	ModeColumnar Mode = "columnar"
	// ModeIterator returns a lazy per-row view over the same frame.
	ModeIterator Mode = "iterator"
)

var recognizedModes = []string{string(ModeColumnar), string(ModeIterator)}

// Result is what Ingest returns on success.
type Result struct {
	Mode     Mode
	Frame    *frame.CoreFrame
	Iterator *frame.Iterator // non-nil iff Mode == ModeIterator
	Metrics  Metrics
}

// Options tunes a single Ingest call.
type Options struct {
	MaxDeviationPct   float64
	DowncastTolerance float64
	SampleOffenders   int
	BackendTag        BackendTag
}

// Ingest runs the full pipeline: schema check, timezone check, sort,
// dedupe, cadence validation, gap fill, schema enforcement, and metrics
// finalization, reporting at most five progress events to sink. The gap
// fill stage has no event of its own; it is folded into the final event
// since the six-stage pipeline must fit progress.MaxEvents.
//
// Every stage either passes its output to the next or fails with a typed
// error from barerrors; no partial CoreFrame is ever returned on failure,
// and progress events already emitted are not retracted.
func Ingest(src Source, cadence time.Duration, mode Mode, downcast bool, opts Options, sink progress.Sink) (Result, error) {
	start := time.Now()
	reporter := progress.NewReporter(sink)

	if mode != ModeColumnar && mode != ModeIterator {
		return Result{}, &barerrors.InvalidMode{Value: string(mode), Expected: recognizedModes}
	}
	if cadence <= 0 {
		return Result{}, &barerrors.InvalidCadence{Value: cadence.String()}
	}
	if !ValidBackendTag(opts.BackendTag) {
		return Result{}, &barerrors.InvalidBackendTag{Value: string(opts.BackendTag)}
	}

	raw, err := src.Read()
	if err != nil {
		return Result{}, err
	}
	if err := reporter.Emit(progress.StageRead, "read raw batch"); err != nil {
		return Result{}, err
	}

	checked, err := checkSchema(raw)
	if err != nil {
		return Result{}, err
	}
	if err := checkTimezone(checked.timestamp, opts.SampleOffenders); err != nil {
		return Result{}, err
	}

	rowsIn := len(checked.timestamp)

	if rowsIn == 0 {
		emptyFrame := &frame.CoreFrame{}
		for _, stage := range []progress.Stage{progress.StageSort, progress.StageDedupe, progress.StageCadence, progress.StageFinalize} {
			if err := reporter.Emit(stage, "empty batch"); err != nil {
				return Result{}, err
			}
		}
		metrics := Metrics{
			BackendTag:           opts.BackendTag,
			RuntimeSeconds:       elapsedSeconds(start),
			ThroughputRowsPerSec: 0,
		}
		return finishResult(mode, emptyFrame, metrics), nil
	}

	perm := sortChronological(checked)
	if err := reporter.Emit(progress.StageSort, "sorted chronologically"); err != nil {
		return Result{}, err
	}

	keptPerm, duplicatesRemoved := dedupeKeepFirst(checked, perm)
	deduped := gather(checked, keptPerm)
	if err := reporter.Emit(progress.StageDedupe, "removed duplicate timestamps"); err != nil {
		return Result{}, err
	}

	cadenceInfo, err := validateCadence(deduped.timestamp, cadence, opts.MaxDeviationPct)
	if err != nil {
		return Result{}, err
	}
	if err := reporter.Emit(progress.StageCadence, "validated cadence"); err != nil {
		return Result{}, err
	}

	filled := fillGaps(deduped, cadence, cadenceInfo.expectedIntervals)

	coreFrame, downcastApplied := enforceSchema(filled, downcast, opts.DowncastTolerance)

	rowsOut := coreFrame.Len()
	runtime := elapsedSeconds(start)
	metrics := Metrics{
		RowsIn:               rowsIn,
		RowsOut:              rowsOut,
		DuplicatesRemoved:    duplicatesRemoved,
		GapsInserted:         int(cadenceInfo.missingIntervals),
		RuntimeSeconds:       runtime,
		ThroughputRowsPerSec: throughput(rowsOut, runtime),
		BackendTag:           opts.BackendTag,
		DowncastApplied:      downcastApplied,
	}
	// gap_fill is folded into this event: five stage names are reported
	// against the six-stage enum, keeping every call within MaxEvents.
	if err := reporter.Emit(progress.StageFinalize, "filled gaps and finalized metrics"); err != nil {
		return Result{}, err
	}

	return finishResult(mode, coreFrame, metrics), nil
}

func finishResult(mode Mode, f *frame.CoreFrame, metrics Metrics) Result {
	result := Result{Mode: mode, Frame: f, Metrics: metrics}
	if mode == ModeIterator {
		result.Iterator = frame.NewIterator(f)
	}
	return result
}

func elapsedSeconds(start time.Time) float64 {
	s := time.Since(start).Seconds()
	if s <= 0 {
		return 1e-9 // clock resolution floor; runtime_seconds must be non-zero
	}
	return s
}

func throughput(rowsOut int, runtimeSeconds float64) float64 {
	if runtimeSeconds <= 0 {
		return 0
	}
	return float64(rowsOut) / runtimeSeconds
}
