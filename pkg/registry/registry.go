// Package registry publishes one entry point per view unit: either the plain
// unit or its connected binding, decided where the unit is declared.
// Composing parents resolve by name and never choose the flavor, which is
// what makes pushing a connection boundary up or down invisible to them.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/graft/pkg/connect"
	"github.com/aretw0/graft/pkg/contract"
)

// ErrDuplicateEntry is returned when a unit name is registered twice. A unit
// directory publishes exactly one entry point.
var ErrDuplicateEntry = errors.New("entry already registered")

// ErrNotRegistered is returned when resolving a name with no entry.
var ErrNotRegistered = errors.New("entry not registered")

// Entry is the published form of one unit: plain or connected. The choice is
// fixed at registration, not per resolution.
type Entry struct {
	unit    *contract.Unit
	binding *connect.Binding
}

// Unit returns the unit contract, for plain and connected entries alike.
func (e Entry) Unit() *contract.Unit { return e.unit }

// Binding returns the connection binding of a connected entry.
func (e Entry) Binding() (*connect.Binding, bool) {
	return e.binding, e.binding != nil
}

// Connected reports whether the entry resolves to the connected binding.
func (e Entry) Connected() bool { return e.binding != nil }

// Registry maps unit names to their published entry points.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// RegisterPlain publishes a unit as-is.
func (r *Registry) RegisterPlain(u *contract.Unit) error {
	return r.register(u.Name(), Entry{unit: u})
}

// RegisterConnected publishes a unit behind its connected binding.
func (r *Registry) RegisterConnected(b *connect.Binding) error {
	return r.register(b.Unit().Name(), Entry{unit: b.Unit(), binding: b})
}

func (r *Registry) register(name string, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("unit %q: %w", name, ErrDuplicateEntry)
	}
	r.entries[name] = e
	return nil
}

// Resolve returns the published entry for a unit name.
func (r *Registry) Resolve(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("unit %q: %w", name, ErrNotRegistered)
	}
	return e, nil
}

// Names returns the registered unit names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
