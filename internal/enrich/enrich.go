// Package enrich implements the indicator enrichment engine: selective,
// dependency-ordered computation of indicator columns over an immutable
// CoreFrame, with strict and non-strict failure semantics and a
// post-condition hash check guarding the frame's immutability invariant.
//
// It is grounded on the teacher's internal/webhooks matcher-dispatch loop
// (resolve a set of named components, run each, collect outcomes) combined
// with the internal/eventbus-derived progress.Reporter from the ingestion
// side for stage reporting.
package enrich

import (
	"barcore/internal/barerrors"
	"barcore/internal/frame"
	"barcore/internal/hashutil"
	"barcore/internal/indicator"
	"barcore/internal/progress"
)

// EnrichmentRequest names the indicators to compute and, optionally,
// per-indicator parameter overrides merged over each Spec's DefaultParams.
// Strict controls failure handling: true aborts the whole call on the
// first indicator failure; false captures failures per-indicator and
// continues with the unaffected subset.
type EnrichmentRequest struct {
	Indicators []string
	Params     map[string]indicator.Params
	Strict     bool
}

// FailedIndicator records why a requested (or transitively depended-upon)
// indicator did not contribute a column.
type FailedIndicator struct {
	Name   string
	Reason string
}

// EnrichedFrame is the result of a successful Enrich call. Core is the
// same CoreFrame the caller passed in, never copied or mutated; Columns
// holds every successfully computed indicator column, keyed by the name it
// provides (not necessarily the indicator's own name, when Provides lists
// more than one column).
type EnrichedFrame struct {
	Core              *frame.CoreFrame
	Columns           map[string]frame.Column
	IndicatorsApplied []string
	FailedIndicators  []FailedIndicator
}

// Enrich computes the requested indicators over core using specs resolved
// from registry, reporting stage progress to sink.
//
// In strict mode, any unknown indicator, dependency-resolution failure, or
// compute failure aborts immediately with zero partial results. In
// non-strict mode, unknown indicators and compute failures are captured in
// FailedIndicators (along with every indicator that transitively depended
// on the failure), and the call still succeeds with whatever subset
// computed cleanly.
//
// Enrich never mutates core. It verifies this on exit by comparing a
// BLAKE3 hash of core's canonical columns taken before and after the run;
// a mismatch is a programming error in a Compute function and is reported
// as CoreMutationDetected regardless of strict/non-strict mode.
func Enrich(core *frame.CoreFrame, request EnrichmentRequest, registry *indicator.Registry, sink progress.Sink) (EnrichedFrame, error) {
	reporter := progress.NewReporter(sink)

	if dup := duplicateNames(request.Indicators); len(dup) > 0 {
		return EnrichedFrame{}, &barerrors.DuplicateIndicators{Names: dup}
	}

	beforeHash := hashutil.HashCore(core)

	known, unknownFailures, err := partitionKnown(registry, request.Indicators, request.Strict)
	if err != nil {
		return EnrichedFrame{}, err
	}

	if err := reporter.Emit(progress.StageRead, "validated enrichment request"); err != nil {
		return EnrichedFrame{}, err
	}

	order, err := indicator.Resolve(registry, known)
	if err != nil {
		if request.Strict {
			return EnrichedFrame{}, err
		}
		// Non-strict: a resolution failure (cycle, or a transitive
		// dependency that vanished between lookup and resolve) fails the
		// whole selective set, since there is no well-defined partial
		// order to fall back to.
		return EnrichedFrame{}, err
	}

	ctx := indicator.NewContext(core)
	result := EnrichedFrame{
		Core:             core,
		Columns:          make(map[string]frame.Column),
		FailedIndicators: unknownFailures,
	}
	failedSet := make(map[string]string, len(unknownFailures))
	for _, f := range unknownFailures {
		failedSet[f.Name] = f.Reason
	}

	for _, name := range order {
		spec, lookupErr := registry.Lookup(name)
		if lookupErr != nil {
			// A node discovered during resolution vanished from the
			// registry mid-call; treat like any other compute failure.
			if request.Strict {
				return EnrichedFrame{}, lookupErr
			}
			failedSet[name] = lookupErr.Error()
			result.FailedIndicators = append(result.FailedIndicators, FailedIndicator{Name: name, Reason: lookupErr.Error()})
			continue
		}

		if blocker, blocked := blockedBy(spec, registry, failedSet); blocked {
			reason := "skipped: dependency " + blocker + " failed"
			failedSet[name] = reason
			result.FailedIndicators = append(result.FailedIndicators, FailedIndicator{Name: name, Reason: reason})
			continue
		}

		params := indicator.Merge(spec.DefaultParams, request.Params[spec.Name])
		cols, computeErr := spec.Compute(ctx, params)
		if computeErr != nil {
			wrapped := &barerrors.IndicatorComputeFailure{Name: spec.Name, Cause: computeErr}
			if request.Strict {
				return EnrichedFrame{}, wrapped
			}
			failedSet[name] = wrapped.Error()
			result.FailedIndicators = append(result.FailedIndicators, FailedIndicator{Name: name, Reason: wrapped.Error()})
			continue
		}

		for colName, col := range cols {
			ctx.Put(colName, col)
			result.Columns[colName] = col
		}
		result.IndicatorsApplied = append(result.IndicatorsApplied, name)
	}

	if err := reporter.Emit(progress.StageFinalize, "enrichment complete"); err != nil {
		return EnrichedFrame{}, err
	}

	afterHash := hashutil.HashCore(core)
	if beforeHash != afterHash {
		return EnrichedFrame{}, &barerrors.CoreMutationDetected{
			ExpectedHash: beforeHash.String(),
			ActualHash:   afterHash.String(),
		}
	}

	return result, nil
}

func duplicateNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var dup []string
	dupSeen := make(map[string]bool)
	for _, n := range names {
		if seen[n] && !dupSeen[n] {
			dup = append(dup, n)
			dupSeen[n] = true
		}
		seen[n] = true
	}
	return dup
}

// partitionKnown splits requested into names the registry recognizes and,
// in non-strict mode, a FailedIndicator entry per unknown name. In strict
// mode it returns the first UnknownIndicator error instead, with no side
// effects.
func partitionKnown(registry *indicator.Registry, requested []string, strict bool) ([]string, []FailedIndicator, error) {
	var known []string
	var failed []FailedIndicator
	for _, name := range requested {
		if _, err := registry.Lookup(name); err != nil {
			if strict {
				return nil, nil, err
			}
			failed = append(failed, FailedIndicator{Name: name, Reason: err.Error()})
			continue
		}
		known = append(known, name)
	}
	return known, failed, nil
}

// blockedBy reports whether spec depends, directly or through a
// core-column alias, on an indicator already recorded in failedSet.
func blockedBy(spec indicator.Spec, registry *indicator.Registry, failedSet map[string]string) (string, bool) {
	for _, req := range spec.Requires {
		if _, failed := failedSet[req]; failed {
			return req, true
		}
		// req may be a provided column name rather than an indicator
		// name; resolve it to its owning indicator before checking.
		if owner, ok := registry.Owner(req); ok {
			if _, failed := failedSet[owner]; failed {
				return owner, true
			}
		}
	}
	return "", false
}
