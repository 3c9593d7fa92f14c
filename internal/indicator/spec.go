// Package indicator holds the pluggable indicator registry: named specs,
// their declared column dependencies, and the dependency resolver that
// turns a requested indicator list into a total execution order.
//
// It is modeled on the teacher's internal/webhooks/matcher package: a set
// of independently-testable, explicitly-registered components keyed by a
// string identifier, rather than discovered by reflection or import-time
// side effects (the teacher registers matchers into a slice in one place;
// here specs are registered one at a time through an explicit API, per the
// spec's "no filesystem discovery, no decorator auto-registration" rule).
package indicator

import "barcore/internal/frame"

// Context gives a Compute function read access to the core frame and to
// indicator columns already produced earlier in the resolved order.
type Context struct {
	Core    *frame.CoreFrame
	columns map[string]frame.Column
}

// NewContext returns a Context over core with no indicator columns yet
// computed.
func NewContext(core *frame.CoreFrame) *Context {
	return &Context{Core: core, columns: make(map[string]frame.Column)}
}

// Len returns the row count of the underlying core frame.
func (c *Context) Len() int { return c.Core.Len() }

// Column resolves name against the core columns first, then against
// indicator columns computed earlier in this enrichment call.
func (c *Context) Column(name string) (frame.Column, bool) {
	switch name {
	case "open":
		return c.Core.Open, true
	case "high":
		return c.Core.High, true
	case "low":
		return c.Core.Low, true
	case "close":
		return c.Core.Close, true
	case "volume":
		return c.Core.Volume, true
	}
	col, ok := c.columns[name]
	return col, ok
}

// Put records a newly computed indicator column so later indicators in the
// same resolved order can depend on it. Called by the enrichment engine
// after a successful Compute, never by Compute functions themselves.
func (c *Context) Put(name string, col frame.Column) {
	c.columns[name] = col
}

// Params is the effective parameter set passed to a Compute function:
// the spec's DefaultParams merged with any caller-supplied overrides.
type Params map[string]any

// Merge returns a new Params with override entries taking precedence over
// defaults. Neither input is mutated.
func Merge(defaults, override Params) Params {
	out := make(Params, len(defaults)+len(override))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ComputeFunc computes one or more named columns from ctx using the
// effective params. It must be vectorized: no per-row scalar loop over the
// full frame length in the critical path.
type ComputeFunc func(ctx *Context, params Params) (map[string]frame.Column, error)

// Spec describes one registerable indicator.
type Spec struct {
	// Name uniquely identifies the indicator within a registry.
	Name string
	// Requires lists column names the indicator depends on: either core
	// columns (open, high, low, close, volume) or other indicators'
	// Provides names.
	Requires []string
	// Provides lists the column names this indicator contributes. Must be
	// non-empty and disjoint from every other registered spec's Provides,
	// and from the core column set.
	Provides []string
	// Version is an opaque string; the engine never interprets it.
	Version string
	// DefaultParams seeds Params for callers that don't override them.
	DefaultParams Params
	// Compute is the vectorized transformation.
	Compute ComputeFunc
}
