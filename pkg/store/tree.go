package store

import (
	"errors"
	"sort"

	"github.com/aretw0/graft/pkg/schema"
)

// Tree is a validated domain-module hierarchy. Construction proves the
// mirroring invariant: at every level, the names of a module's children equal
// the names of its state shape's children, so the module tree and the state
// tree have the same shape all the way down.
type Tree struct {
	root   *Module
	byPath map[string]*Module
}

// NewTree validates the hierarchy rooted at root and indexes it by path.
// All violations found are reported together.
func NewTree(root *Module) (*Tree, error) {
	t := &Tree{root: root, byPath: make(map[string]*Module)}

	var errs []error
	t.walk(root, Path{}, &errs)

	switch len(errs) {
	case 0:
		return t, nil
	case 1:
		return nil, errs[0]
	default:
		return nil, &schema.AggregateError{Errors: errs}
	}
}

func (t *Tree) walk(m *Module, p Path, errs *[]error) {
	t.byPath[p.String()] = m

	if m.StateShape == nil {
		*errs = append(*errs, &Error{Code: CodeUnspecifiedShape, Path: p, Detail: "module declares no state shape"})
	}

	seenActions := make(map[string]bool, len(m.Actions))
	for _, a := range m.Actions {
		if seenActions[a.Name] {
			*errs = append(*errs, &Error{Code: CodeDuplicateAction, Path: p, Detail: "action " + a.Name + " declared twice"})
		}
		seenActions[a.Name] = true
	}

	for _, q := range m.Queries {
		for _, read := range q.Reads {
			if !p.Related(read) {
				*errs = append(*errs, &Error{
					Code: CodeSiblingRead, Path: p,
					Detail: "query " + q.Name + " reads unrelated state at " + read.String(),
				})
			}
		}
	}

	childModules := make(map[string]*Module, len(m.Children))
	for _, child := range m.Children {
		if _, dup := childModules[child.Name]; dup {
			*errs = append(*errs, &Error{Code: CodeDuplicateModule, Path: p, Detail: "child " + child.Name + " declared twice"})
			continue
		}
		childModules[child.Name] = child
	}

	var shapeChildren map[string]*Shape
	if m.StateShape != nil {
		shapeChildren = m.StateShape.Children
	}

	// The mirror itself: bidirectional containment of child names.
	for name := range childModules {
		if _, ok := shapeChildren[name]; !ok {
			*errs = append(*errs, &Error{
				Code: CodeOrphanModule, Path: p.Child(name),
				Detail: "child module has no matching node in the state shape",
			})
		}
	}
	for name := range shapeChildren {
		if _, ok := childModules[name]; !ok {
			*errs = append(*errs, &Error{
				Code: CodeOrphanState, Path: p.Child(name),
				Detail: "state shape child has no matching module",
			})
		}
	}

	for _, child := range m.Children {
		t.walk(child, p.Child(child.Name), errs)
	}
}

// Root returns the root module.
func (t *Tree) Root() *Module { return t.root }

// At returns the module owning the sub-state at the given path.
func (t *Tree) At(p Path) (*Module, bool) {
	m, ok := t.byPath[p.String()]
	return m, ok
}

// Paths returns every module path in the tree, sorted.
func (t *Tree) Paths() []Path {
	keys := make([]string, 0, len(t.byPath))
	for k := range t.byPath {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Path, len(keys))
	for i, k := range keys {
		out[i] = ParsePath(k)
	}
	return out
}

// Walk visits every module depth-first with its path. Returning an error from
// fn stops the walk.
func (t *Tree) Walk(fn func(p Path, m *Module) error) error {
	return walkModule(t.root, Path{}, fn)
}

func walkModule(m *Module, p Path, fn func(Path, *Module) error) error {
	if err := fn(p, m); err != nil {
		return err
	}
	for _, child := range m.Children {
		if err := walkModule(child, p.Child(child.Name), fn); err != nil {
			return err
		}
	}
	return nil
}

// Extract detaches the subtree at the given path for reuse elsewhere. The
// module travels as a unit with all its child modules and the state shape
// they jointly describe; there is deliberately no way to split one from the
// other. The result is itself a validated Tree.
func (t *Tree) Extract(p Path) (*Tree, error) {
	m, ok := t.At(p)
	if !ok {
		return nil, &Error{Code: CodeNotFound, Path: p, Detail: "no module at path"}
	}
	return NewTree(m)
}

// IsCode reports whether err is or aggregates a store Error with the code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var se *Error
	if errors.As(err, &se) && se.Code == code {
		return true
	}
	for _, sub := range schema.ValidationErrors(err) {
		if IsCode(sub, code) {
			return true
		}
	}
	return false
}
