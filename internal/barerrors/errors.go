// Package barerrors holds the typed error taxonomy for the ingestion and
// enrichment engine. Every failure a caller can observe is a concrete type
// implementing error, following the pattern the teacher uses for
// SporkRootNotFoundError / NodeUnavailableError / NodeExhaustedError: a
// struct carrying the offending values plus, where there is a wrapped
// cause, an Unwrap method.
package barerrors

import "fmt"

// MissingColumns is returned when a raw batch lacks one or more of the
// required input columns.
type MissingColumns struct {
	Missing  []string
	Expected []string
}

func (e *MissingColumns) Error() string {
	return fmt.Sprintf("missing columns %v (expected %v)", e.Missing, e.Expected)
}

// InvalidColumnType is returned when a present column has the wrong type.
type InvalidColumnType struct {
	Column   string
	Expected string
	Actual   string
}

func (e *InvalidColumnType) Error() string {
	return fmt.Sprintf("column %q: expected type %s, got %s", e.Column, e.Expected, e.Actual)
}

// NonUtcTimestamps is returned when one or more timestamps are not
// UTC-qualified.
type NonUtcTimestamps struct {
	SampleOffenders []string
}

func (e *NonUtcTimestamps) Error() string {
	return fmt.Sprintf("non-UTC timestamps found, sample: %v", e.SampleOffenders)
}

// CadenceDeviation is returned when the measured gap rate exceeds the
// configured ceiling.
type CadenceDeviation struct {
	ExpectedIntervals int64
	MissingIntervals  int64
	DeviationPct      float64
}

func (e *CadenceDeviation) Error() string {
	return fmt.Sprintf("cadence deviation %.4f%% exceeds ceiling (expected %d intervals, missing %d)",
		e.DeviationPct, e.ExpectedIntervals, e.MissingIntervals)
}

// InvalidMode is returned when the ingestion mode is not one of the
// recognized values.
type InvalidMode struct {
	Value    string
	Expected []string
}

func (e *InvalidMode) Error() string {
	return fmt.Sprintf("invalid mode %q, expected one of %v", e.Value, e.Expected)
}

// InvalidCadence is returned when the requested cadence is not positive or
// not a whole number of the timestamp resolution.
type InvalidCadence struct {
	Value string
}

func (e *InvalidCadence) Error() string {
	return fmt.Sprintf("invalid cadence: %s", e.Value)
}

// InvalidBackendTag is returned when Options.BackendTag is not one of the
// recognized BackendTag values.
type InvalidBackendTag struct {
	Value string
}

func (e *InvalidBackendTag) Error() string {
	return fmt.Sprintf("invalid backend tag: %q", e.Value)
}

// DuplicateIndicators is returned when an enrichment request names the same
// indicator more than once.
type DuplicateIndicators struct {
	Names []string
}

func (e *DuplicateIndicators) Error() string {
	return fmt.Sprintf("duplicate indicators requested: %v", e.Names)
}

// UnknownIndicator is returned when a requested or transitively-required
// indicator name does not resolve in the registry.
type UnknownIndicator struct {
	Name string
}

func (e *UnknownIndicator) Error() string {
	return fmt.Sprintf("unknown indicator: %q", e.Name)
}

// ProvidesConflict is returned when two resolved indicators would produce
// a column of the same name, or when registering a spec whose provides set
// collides with an already-registered spec.
type ProvidesConflict struct {
	Column         string
	ExistingOwner  string
	AttemptedOwner string
}

func (e *ProvidesConflict) Error() string {
	return fmt.Sprintf("column %q already provided by %q, cannot also be provided by %q",
		e.Column, e.ExistingOwner, e.AttemptedOwner)
}

// CyclicDependency is returned when the dependency graph among resolved
// indicators contains a cycle.
type CyclicDependency struct {
	Cycle []string
}

func (e *CyclicDependency) Error() string {
	return fmt.Sprintf("cyclic indicator dependency: %v", e.Cycle)
}

// IndicatorComputeFailure wraps an error raised by an indicator's compute
// function.
type IndicatorComputeFailure struct {
	Name  string
	Cause error
}

func (e *IndicatorComputeFailure) Error() string {
	return fmt.Sprintf("indicator %q failed: %v", e.Name, e.Cause)
}

func (e *IndicatorComputeFailure) Unwrap() error { return e.Cause }

// CoreMutationDetected is a fatal post-condition violation: the core
// columns of an enriched frame no longer hash-match the input core.
type CoreMutationDetected struct {
	ExpectedHash string
	ActualHash   string
}

func (e *CoreMutationDetected) Error() string {
	return fmt.Sprintf("core mutation detected: expected hash %s, got %s", e.ExpectedHash, e.ActualHash)
}

// ProgressContractViolation is raised by the progress sink wrapper when the
// engine emits an unknown stage or exceeds the per-call event cap.
type ProgressContractViolation struct {
	Reason string
}

func (e *ProgressContractViolation) Error() string {
	return fmt.Sprintf("progress contract violation: %s", e.Reason)
}

// DuplicateIndicator is returned by registry.Register when the name is
// already registered.
type DuplicateIndicator struct {
	Name string
}

func (e *DuplicateIndicator) Error() string {
	return fmt.Sprintf("indicator %q already registered", e.Name)
}

// InvalidIndicatorSpec is returned by registry.Register when a spec
// violates the IndicatorSpec invariants (non-empty name, non-empty
// provides, provides disjoint from the core column set).
type InvalidIndicatorSpec struct {
	Name   string
	Reason string
}

func (e *InvalidIndicatorSpec) Error() string {
	return fmt.Sprintf("invalid indicator spec %q: %s", e.Name, e.Reason)
}
