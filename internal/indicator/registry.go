package indicator

import (
	"sync"

	"barcore/internal/barerrors"
	"barcore/internal/frame"
)

var coreColumnSet = func() map[string]bool {
	m := make(map[string]bool, len(frame.CanonicalColumns))
	for _, c := range frame.CanonicalColumns {
		m[c] = true
	}
	return m
}()

// Registry holds named indicator specs. It is not a process-wide
// singleton: callers construct and thread an instance through each
// enrichment call so tests can run against an isolated registry. Callers
// invoking Register/Unregister from concurrent goroutines must still
// serialize those calls themselves (per the spec's shared-resource
// policy); Registry's own mutex only protects its internal maps from
// torn reads during that window.
type Registry struct {
	mu            sync.Mutex
	specs         map[string]Spec
	order         []string       // registration order, for list() and tie-breaking
	providesOwner map[string]string // provided column -> owning indicator name
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		specs:         make(map[string]Spec),
		providesOwner: make(map[string]string),
	}
}

// Register adds spec to the registry.
func (r *Registry) Register(spec Spec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if spec.Name == "" {
		return &barerrors.InvalidIndicatorSpec{Name: spec.Name, Reason: "name must be non-empty"}
	}
	if len(spec.Provides) == 0 {
		return &barerrors.InvalidIndicatorSpec{Name: spec.Name, Reason: "provides must be non-empty"}
	}
	if _, exists := r.specs[spec.Name]; exists {
		return &barerrors.DuplicateIndicator{Name: spec.Name}
	}
	for _, p := range spec.Provides {
		if coreColumnSet[p] {
			return &barerrors.ProvidesConflict{Column: p, ExistingOwner: "core", AttemptedOwner: spec.Name}
		}
		if owner, exists := r.providesOwner[p]; exists {
			return &barerrors.ProvidesConflict{Column: p, ExistingOwner: owner, AttemptedOwner: spec.Name}
		}
	}

	r.specs[spec.Name] = spec
	r.order = append(r.order, spec.Name)
	for _, p := range spec.Provides {
		r.providesOwner[p] = spec.Name
	}
	return nil
}

// Unregister removes name from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec, exists := r.specs[name]
	if !exists {
		return &barerrors.UnknownIndicator{Name: name}
	}
	delete(r.specs, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, p := range spec.Provides {
		delete(r.providesOwner, p)
	}
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spec, exists := r.specs[name]
	if !exists {
		return Spec{}, &barerrors.UnknownIndicator{Name: name}
	}
	return spec, nil
}

// List returns registered indicator names in registration order.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Clear removes every registered spec, returning the registry to its
// zero-value state.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.specs = make(map[string]Spec)
	r.order = nil
	r.providesOwner = make(map[string]string)
}

// owner reports which indicator (if any) provides column name.
func (r *Registry) owner(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.providesOwner[name]
	return o, ok
}

// Owner reports which indicator (if any) provides column name. Exported
// for callers outside this package, such as the enrichment engine, that
// need to map a Requires entry back to its producing indicator.
func (r *Registry) Owner(name string) (string, bool) {
	return r.owner(name)
}

// registrationIndex returns name's position in registration order, or -1.
func (r *Registry) registrationIndex(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}
