// Package hashutil computes a deterministic digest over a CoreFrame's
// columns, used to verify that the enrichment engine never mutates the
// core dataset it was given. BLAKE3 (github.com/zeebo/blake3) is used for
// speed on multi-million-row frames; it is already present, indirectly,
// in the teacher's own dependency graph via the Flow crypto stack.
package hashutil

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/blake3"

	"barcore/internal/frame"
)

// Digest is a fixed-size BLAKE3 output.
type Digest [32]byte

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// canonicalNaNBits is the fixed bit pattern every NaN value hashes to,
// regardless of its original payload bits, so that distinct NaN
// representations never produce a spurious hash mismatch.
var canonicalNaNBits = math.Float64bits(math.NaN())

// Hash computes a digest over the named columns of f, processed in
// canonical column order regardless of the order columns are listed in.
// Column names not present in frame.CanonicalColumns are ignored.
func Hash(f *frame.CoreFrame, columns []string) Digest {
	requested := make(map[string]bool, len(columns))
	for _, c := range columns {
		requested[c] = true
	}

	h := blake3.New()
	var scratch [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		h.Write(scratch[:])
	}
	writeFloat := func(v float64) {
		bits := math.Float64bits(v)
		if math.IsNaN(v) {
			bits = canonicalNaNBits
		}
		writeU64(bits)
	}
	writeColumn := func(c frame.Column) {
		var width uint64
		if c.Narrow() {
			width = 32
		} else {
			width = 64
		}
		writeU64(width)
		for i := 0; i < c.Len(); i++ {
			writeFloat(c.At(i))
		}
	}

	if f == nil {
		f = &frame.CoreFrame{}
	}

	for _, name := range frame.CanonicalColumns {
		if !requested[name] {
			continue
		}
		h.Write([]byte(name))
		switch name {
		case "timestamp":
			for _, ts := range f.Timestamp {
				writeU64(uint64(ts.UTC().UnixNano()))
			}
		case "open":
			writeColumn(f.Open)
		case "high":
			writeColumn(f.High)
		case "low":
			writeColumn(f.Low)
		case "close":
			writeColumn(f.Close)
		case "volume":
			writeColumn(f.Volume)
		case "is_gap":
			for _, g := range f.IsGap {
				if g {
					h.Write([]byte{1})
				} else {
					h.Write([]byte{0})
				}
			}
		}
	}

	var out Digest
	h.Sum(out[:0])
	return out
}

// HashCore hashes exactly the core column set, in canonical order.
func HashCore(f *frame.CoreFrame) Digest {
	return Hash(f, frame.CanonicalColumns)
}
