package frame

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Column holds one numeric price/volume column, stored either as float64
// (the default) or float32 (after a precision-guarded downcast). At most
// one of the two backing slices is non-nil; a zero-value Column has
// neither and is empty.
type Column struct {
	f64 []float64
	f32 []float32
}

// NewColumn wraps a float64 slice as a Column.
func NewColumn(values []float64) Column {
	return Column{f64: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.f32 != nil {
		return len(c.f32)
	}
	return len(c.f64)
}

// Narrow reports whether the column is stored as float32.
func (c Column) Narrow() bool { return c.f32 != nil }

// At returns the value at index i as a float64 regardless of storage width.
func (c Column) At(i int) float64 {
	if c.f32 != nil {
		return float64(c.f32[i])
	}
	return c.f64[i]
}

// F64 returns the column's values as a float64 slice, materializing a new
// slice if the column is currently stored narrow.
func (c Column) F64() []float64 {
	if c.f32 == nil {
		return c.f64
	}
	out := make([]float64, len(c.f32))
	for i, v := range c.f32 {
		out[i] = float64(v)
	}
	return out
}

// F32 returns the column's values as a float32 slice, materializing a new
// slice (and truncating precision) if the column is currently stored wide.
func (c Column) F32() []float32 {
	if c.f32 != nil {
		return c.f32
	}
	out := make([]float32, len(c.f64))
	for i, v := range c.f64 {
		out[i] = float32(v)
	}
	return out
}

// Downcast attempts to convert the column to float32 storage, returning the
// narrowed column and true only if every value round-trips through float32
// with absolute error no greater than tolerance. NaN and Inf values are
// treated as round-tripping exactly (the bit pattern is canonicalized
// separately by the hash utility, not here).
func (c Column) Downcast(tolerance float64) (Column, bool) {
	if c.f32 != nil {
		return c, true
	}
	if len(c.f64) == 0 {
		return Column{f32: []float32{}}, true
	}

	narrow := make([]float32, len(c.f64))
	var wide, roundTripped []float64 // finite-valued pairs only; NaN/Inf always round-trip
	for i, v := range c.f64 {
		n := float32(v)
		narrow[i] = n
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		wide = append(wide, v)
		roundTripped = append(roundTripped, float64(n))
	}

	// Max absolute round-trip error across the column, via gonum's
	// infinity-norm distance between the wide and narrowed-then-widened
	// slices, rather than a hand-rolled per-element diff loop.
	if len(wide) > 0 {
		if maxErr := floats.Distance(wide, roundTripped, math.Inf(1)); maxErr > tolerance {
			return c, false
		}
	}
	return Column{f32: narrow}, true
}

// Clone returns a deep copy of the column.
func (c Column) Clone() Column {
	if c.f32 != nil {
		out := make([]float32, len(c.f32))
		copy(out, c.f32)
		return Column{f32: out}
	}
	out := make([]float64, len(c.f64))
	copy(out, c.f64)
	return Column{f64: out}
}
