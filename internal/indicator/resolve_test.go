package indicator

import (
	"reflect"
	"testing"

	"barcore/internal/frame"
)

func specWithDeps(name string, requires []string, provides ...string) Spec {
	return Spec{
		Name:     name,
		Requires: requires,
		Provides: provides,
		Compute: func(ctx *Context, params Params) (map[string]frame.Column, error) {
			return nil, nil
		},
	}
}

func TestResolve_SimpleCoreDependency(t *testing.T) {
	r := New()
	_ = r.Register(specWithDeps("ema_fast", []string{"close"}, "ema_fast"))
	_ = r.Register(specWithDeps("ema_slow", []string{"close"}, "ema_slow"))

	order, err := Resolve(r, []string{"ema_fast", "ema_slow"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"ema_fast", "ema_slow"}) {
		t.Errorf("expected requested order preserved, got %v", order)
	}
}

func TestResolve_TransitiveDependency(t *testing.T) {
	r := New()
	_ = r.Register(specWithDeps("atr", []string{"high", "low", "close"}, "atr"))
	_ = r.Register(specWithDeps("atr_signal", []string{"atr"}, "atr_signal"))

	order, err := Resolve(r, []string{"atr_signal"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"atr", "atr_signal"}) {
		t.Errorf("expected atr before atr_signal, got %v", order)
	}
}

func TestResolve_UnknownTransitiveDependency(t *testing.T) {
	r := New()
	_ = r.Register(specWithDeps("derived", []string{"missing_col"}, "derived"))

	_, err := Resolve(r, []string{"derived"})
	if err == nil {
		t.Fatal("expected UnknownIndicator error")
	}
}

func TestResolve_UnknownRequestedIndicator(t *testing.T) {
	r := New()
	_, err := Resolve(r, []string{"bogus"})
	if err == nil {
		t.Fatal("expected UnknownIndicator error")
	}
}

func TestResolve_CyclicDependency(t *testing.T) {
	r := New()
	_ = r.Register(specWithDeps("a", []string{"b"}, "a"))
	_ = r.Register(specWithDeps("b", []string{"a"}, "b"))

	_, err := Resolve(r, []string{"a"})
	if err == nil {
		t.Fatal("expected CyclicDependency error")
	}
}

func TestResolve_TieBrokenByRequestedOrderThenRegistration(t *testing.T) {
	r := New()
	// Registration order: z, y, x -- all independent, all depend on close.
	_ = r.Register(specWithDeps("z", []string{"close"}, "z"))
	_ = r.Register(specWithDeps("y", []string{"close"}, "y"))
	_ = r.Register(specWithDeps("x", []string{"close"}, "x"))

	// Requested order differs from registration order.
	order, err := Resolve(r, []string{"x", "z", "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"x", "z", "y"}) {
		t.Errorf("expected requested order to win ties, got %v", order)
	}
}

func TestResolve_TransitiveNotRequestedUsesRegistrationOrder(t *testing.T) {
	r := New()
	_ = r.Register(specWithDeps("dep_b", []string{"close"}, "dep_b"))
	_ = r.Register(specWithDeps("dep_a", []string{"close"}, "dep_a"))
	_ = r.Register(specWithDeps("top", []string{"dep_a", "dep_b"}, "top"))

	order, err := Resolve(r, []string{"top"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// dep_b was registered before dep_a, neither is directly requested,
	// so registration order breaks the tie between them.
	want := []string{"dep_b", "dep_a", "top"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("expected %v, got %v", want, order)
	}
}
