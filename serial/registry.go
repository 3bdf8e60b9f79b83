package serial

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// TagKey is the reserved mapping key carrying a tagged object's type
// identifier. It is injected when a Serializable is converted to its
// document-safe form and stripped again on successful reconstruction;
// callers reading a reconstructed value never see it.
const TagKey = "=="

// Serializable is a self-describing domain value: it can express
// itself as a plain key-value mapping and names the registry
// identifier that rebuilds it.
type Serializable interface {
	// SerialID returns the canonical type identifier registered for
	// this type.
	SerialID() string

	// Serialize returns the value's mapping representation. The
	// registered Factory receives an equivalent mapping back on
	// reconstruction.
	Serialize() map[string]any
}

// Factory rebuilds a domain value from its stripped mapping
// representation.
type Factory func(data map[string]any) (any, error)

// Registry maps type identifiers to factories. It has an explicit
// two-phase lifecycle: Register during process startup, then Freeze
// once; lookups after the freeze hit an immutable snapshot and take no
// lock. Registration after Freeze is an error.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Factory
	frozen  atomic.Pointer[map[string]Factory]
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]Factory{}}
}

func (r *Registry) Register(id string, f Factory) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrRegister)
	}
	if f == nil {
		return fmt.Errorf("%w: nil factory for %q", ErrRegister, id)
	}
	if r.frozen.Load() != nil {
		return fmt.Errorf("%w: registry frozen, cannot register %q", ErrRegister, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; ok {
		return fmt.Errorf("%w: duplicate identifier %q", ErrRegister, id)
	}
	r.entries[id] = f
	return nil
}

// Freeze ends the registration phase. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() != nil {
		return
	}
	snap := make(map[string]Factory, len(r.entries))
	for k, v := range r.entries {
		snap[k] = v
	}
	r.frozen.Store(&snap)
}

func (r *Registry) Lookup(id string) (Factory, bool) {
	if m := r.frozen.Load(); m != nil {
		f, ok := (*m)[id]
		return f, ok
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.entries[id]
	return f, ok
}

// Default is the process-wide registry consulted by stores that were
// not given their own.
var Default = NewRegistry()

func Register(id string, f Factory) error {
	return Default.Register(id, f)
}

// MustRegister registers on the default registry and panics on error,
// for use from init-time wiring.
func MustRegister(id string, f Factory) {
	if err := Default.Register(id, f); err != nil {
		panic(err)
	}
}

// Freeze freezes the default registry.
func Freeze() {
	Default.Freeze()
}
