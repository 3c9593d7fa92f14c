package frame

import "testing"

func TestColumn_DowncastSafe(t *testing.T) {
	c := NewColumn([]float64{1.5, 2.25, 100.0})
	narrow, ok := c.Downcast(1e-6)
	if !ok {
		t.Fatal("expected safe downcast")
	}
	if !narrow.Narrow() {
		t.Fatal("expected narrow column")
	}
	for i := 0; i < c.Len(); i++ {
		if narrow.At(i) != c.At(i) {
			t.Errorf("index %d: expected %v, got %v", i, c.At(i), narrow.At(i))
		}
	}
}

func TestColumn_DowncastUnsafe(t *testing.T) {
	// 0.1 is not exactly representable in binary; at zero tolerance the
	// float32 round-trip must be rejected.
	c := NewColumn([]float64{0.1, 0.2, 0.3})
	_, ok := c.Downcast(0)
	if ok {
		t.Fatal("expected unsafe downcast to be rejected at zero tolerance")
	}
}

func TestColumn_CloneIsIndependent(t *testing.T) {
	c := NewColumn([]float64{1, 2, 3})
	clone := c.Clone()
	clone.f64[0] = 999
	if c.At(0) == 999 {
		t.Fatal("clone mutation leaked into original")
	}
}
