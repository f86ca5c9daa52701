package store

import (
	"fmt"

	"github.com/aretw0/graft/pkg/schema"
)

// Action is a named operation descriptor with a typed payload shape.
type Action struct {
	Name    string
	Payload schema.Schema // nil means the action carries no payload
}

// Invocation is one dispatched occurrence of an action.
type Invocation struct {
	Action  string
	Payload map[string]any
}

// TransitionFunc computes the next sub-state for the module that declares it.
// It receives and returns only the sub-state rooted at the module's own path;
// composing the whole tree's transition is the store runtime's job, which
// structurally prevents a module from writing outside its path.
type TransitionFunc func(sub map[string]any, inv Invocation) (map[string]any, error)

// QueryFunc derives a value from the full state plus parameters. Queries are
// pure; the state they may actually read is bounded by the declared read
// scope.
type QueryFunc func(state map[string]any, params map[string]any) (any, error)

// Query is a named derived-value descriptor. Reads declares the state paths
// the query depends on; every entry must lie on the declaring module's own
// lineage (self, ancestor, or descendant).
type Query struct {
	Name  string
	Reads []Path
	Fn    QueryFunc // nil for manifest-declared queries checked structurally
}

// Shape describes the sub-state a module owns: its own fields plus the named
// child sub-states, which must mirror the module's child modules exactly.
type Shape struct {
	Fields   schema.Schema
	Children map[string]*Shape
}

// Module is one node in the state-management hierarchy. Its nesting below a
// Tree root is isomorphic to the nesting of the sub-state it owns.
type Module struct {
	Name       string
	Actions    []Action
	Transition TransitionFunc
	Queries    []Query
	StateShape *Shape
	Children   []*Module
}

// Action looks up a declared action by name.
func (m *Module) Action(name string) (Action, bool) {
	for _, a := range m.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// Query looks up a declared query by name.
func (m *Module) Query(name string) (Query, bool) {
	for _, q := range m.Queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

func (m *Module) String() string {
	return fmt.Sprintf("Module(%s: %d actions, %d queries, %d children)",
		m.Name, len(m.Actions), len(m.Queries), len(m.Children))
}
