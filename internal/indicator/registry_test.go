package indicator

import (
	"testing"

	"barcore/internal/frame"
)

func dummySpec(name string, provides ...string) Spec {
	return Spec{
		Name:     name,
		Provides: provides,
		Version:  "v1",
		Compute: func(ctx *Context, params Params) (map[string]frame.Column, error) {
			return nil, nil
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	if err := r.Register(dummySpec("ema_fast", "ema_fast")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spec, err := r.Lookup("ema_fast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "ema_fast" {
		t.Errorf("expected ema_fast, got %s", spec.Name)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	_ = r.Register(dummySpec("ema_fast", "ema_fast"))
	err := r.Register(dummySpec("ema_fast", "ema_fast_2"))
	if err == nil {
		t.Fatal("expected DuplicateIndicator error")
	}
}

func TestRegistry_ProvidesConflict(t *testing.T) {
	r := New()
	_ = r.Register(dummySpec("a", "shared_col"))
	err := r.Register(dummySpec("b", "shared_col"))
	if err == nil {
		t.Fatal("expected ProvidesConflict error")
	}
}

func TestRegistry_ProvidesCannotShadowCoreColumn(t *testing.T) {
	r := New()
	err := r.Register(dummySpec("sneaky", "close"))
	if err == nil {
		t.Fatal("expected rejection of an indicator providing a core column name")
	}
}

func TestRegistry_UnregisterUnknown(t *testing.T) {
	r := New()
	if err := r.Unregister("nope"); err == nil {
		t.Fatal("expected UnknownIndicator error")
	}
}

func TestRegistry_UnregisterFreesProvidesSlot(t *testing.T) {
	r := New()
	_ = r.Register(dummySpec("a", "col"))
	if err := r.Unregister("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(dummySpec("b", "col")); err != nil {
		t.Fatalf("expected re-registration of freed column to succeed: %v", err)
	}
}

func TestRegistry_ListIsInsertionOrder(t *testing.T) {
	r := New()
	_ = r.Register(dummySpec("c1", "p1"))
	_ = r.Register(dummySpec("c2", "p2"))
	_ = r.Register(dummySpec("c3", "p3"))
	got := r.List()
	want := []string{"c1", "c2", "c3"}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("index %d: expected %s, got %s", i, name, got[i])
		}
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := New()
	_ = r.Register(dummySpec("a", "p"))
	r.Clear()
	if len(r.List()) != 0 {
		t.Fatal("expected empty registry after Clear")
	}
	if err := r.Register(dummySpec("a", "p")); err != nil {
		t.Fatalf("expected re-registration after Clear to succeed: %v", err)
	}
}

func TestRegistry_EmptyNameRejected(t *testing.T) {
	r := New()
	if err := r.Register(dummySpec("", "p")); err == nil {
		t.Fatal("expected rejection of empty indicator name")
	}
}

func TestRegistry_EmptyProvidesRejected(t *testing.T) {
	r := New()
	if err := r.Register(Spec{Name: "a"}); err == nil {
		t.Fatal("expected rejection of empty provides set")
	}
}
