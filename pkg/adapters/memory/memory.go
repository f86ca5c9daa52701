// Package memory provides in-memory reference implementations of the graft
// ports: a map-backed state source, a recording dispatcher, and a minimal
// store runtime over a validated module tree. They exist for tests and
// examples; production hosts bring their own store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/schema"
	"github.com/aretw0/graft/pkg/store"
)

// Source is a map-backed ports.StateSource.
type Source struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSource seeds a source with the given values.
func NewSource(values map[string]any) *Source {
	s := &Source{values: make(map[string]any, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Value implements ports.StateSource.
func (s *Source) Value(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set updates one value.
func (s *Source) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Recorder is a ports.Dispatcher that records every action it receives.
type Recorder struct {
	mu      sync.Mutex
	actions []ports.Dispatched
}

// Dispatch implements ports.Dispatcher. The payload is copied, never aliased.
func (r *Recorder) Dispatch(_ context.Context, action string, payload map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, ports.Dispatched{Action: action, Payload: clone(payload)})
	return nil
}

// Actions returns the recorded dispatches in order.
func (r *Recorder) Actions() []ports.Dispatched {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Dispatched(nil), r.actions...)
}

// Store is a reference store runtime over a validated module tree. Dispatch
// routes each action to the module that declares it and applies that module's
// transition to the sub-state at the module's own path, never elsewhere.
type Store struct {
	mu    sync.RWMutex
	tree  *store.Tree
	state map[string]any
}

// NewStore wraps a validated tree around an initial state.
func NewStore(tree *store.Tree, initial map[string]any) *Store {
	if initial == nil {
		initial = map[string]any{}
	}
	return &Store{tree: tree, state: initial}
}

// Get reads the value at a state path.
func (s *Store) Get(p store.Path) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lookup(s.state, p)
}

// Dispatch implements ports.Dispatcher: it finds the module declaring the
// action, validates the payload against the declared shape, and swaps in the
// transition's next sub-state at the module's path.
func (s *Store) Dispatch(_ context.Context, action string, payload map[string]any) error {
	var owner *store.Module
	var ownerPath store.Path
	var decl store.Action

	err := s.tree.Walk(func(p store.Path, m *store.Module) error {
		if a, ok := m.Action(action); ok {
			owner, ownerPath, decl = m, p, a
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return err
	}
	if owner == nil {
		return fmt.Errorf("no module declares action %q", action)
	}
	if owner.Transition == nil {
		return fmt.Errorf("module %s declares %q but has no transition", ownerPath, action)
	}
	if decl.Payload != nil {
		if err := schema.Validate(decl.Payload, payload); err != nil {
			return fmt.Errorf("action %q payload: %w", action, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub, _ := lookup(s.state, ownerPath)
	subMap, _ := sub.(map[string]any)

	next, err := owner.Transition(clone(subMap), store.Invocation{Action: action, Payload: clone(payload)})
	if err != nil {
		return fmt.Errorf("transition for %q: %w", action, err)
	}

	return replace(s.state, ownerPath, next)
}

// Source adapts the store to a ports.StateSource for one binding: names maps
// each state-sourced input name to the state path it reads.
func (s *Store) Source(names map[string]store.Path) ports.StateSource {
	return &pathSource{store: s, names: names}
}

type pathSource struct {
	store *Store
	names map[string]store.Path
}

func (ps *pathSource) Value(name string) (any, bool) {
	p, ok := ps.names[name]
	if !ok {
		return nil, false
	}
	return ps.store.Get(p)
}

var errFound = errors.New("found")

func lookup(state map[string]any, p store.Path) (any, bool) {
	if p.IsRoot() {
		return state, true
	}
	var current any = state
	for _, seg := range p {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func replace(state map[string]any, p store.Path, next map[string]any) error {
	if p.IsRoot() {
		for k := range state {
			delete(state, k)
		}
		for k, v := range next {
			state[k] = v
		}
		return nil
	}

	parent, ok := lookup(state, p[:len(p)-1])
	if !ok {
		return fmt.Errorf("state path %s does not exist", p)
	}
	parentMap, ok := parent.(map[string]any)
	if !ok {
		return fmt.Errorf("state path %s is not a map", p[:len(p)-1])
	}
	parentMap[p[len(p)-1]] = next
	return nil
}

func clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
