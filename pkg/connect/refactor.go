package connect

import (
	"sort"
	"strings"

	"github.com/aretw0/graft/pkg/contract"
)

// Split is the result of pushing a connection boundary down one level: the
// former connected parent is now a plain unit, and each child carries its own
// independently selected binding. Lift is the inverse.
type Split struct {
	parent    *contract.Unit
	parentOwn Slice // preserved so Lift can restore the original binding
	children  []*Binding
}

// PushDown moves the connection boundary from a connected parent onto its
// children. The parent becomes plain and each child binding selects its own
// slice of state and dispatch inputs.
//
// The transformation must be behavior-preserving: the union of the children's
// state and dispatch selections has to equal the parent binding's, name for
// name. Each child must be a unit the parent actually composes. The units'
// own contracts are never touched; only the connection layer changes.
func PushDown(parent *Binding, children ...*Binding) (*Split, error) {
	composed := make(map[string]bool)
	for _, name := range parent.Unit().Children() {
		composed[name] = true
	}

	childNames := make(map[string]bool)
	for _, child := range children {
		if !composed[child.Unit().Name()] {
			return nil, &contract.Error{
				Code: CodeForeignChild, Unit: parent.Unit().Name(),
				Reason: "cannot push the binding down onto " + child.Unit().Name() + ": not a composed child",
			}
		}
		for _, name := range child.StateInputs().Names() {
			childNames[name] = true
		}
		for _, name := range child.DispatchInputs().Names() {
			childNames[name] = true
		}
	}

	parentNames := make(map[string]bool)
	for _, name := range parent.StateInputs().Names() {
		parentNames[name] = true
	}
	for _, name := range parent.DispatchInputs().Names() {
		parentNames[name] = true
	}

	if diff := symmetricDiff(parentNames, childNames); len(diff) > 0 {
		return nil, &contract.Error{
			Code: CodeNotPreserving, Unit: parent.Unit().Name(),
			Reason: "split changes the effective input set: " + strings.Join(diff, ", "),
		}
	}

	return &Split{
		parent:    parent.Unit(),
		parentOwn: parent.OwnInputs(),
		children:  append([]*Binding(nil), children...),
	}, nil
}

// Parent returns the now-plain parent unit.
func (s *Split) Parent() *contract.Unit { return s.parent }

// Children returns the child bindings carrying the pushed-down boundary.
func (s *Split) Children() []*Binding {
	return append([]*Binding(nil), s.children...)
}

// Lift moves the boundary back up, rebuilding a single parent binding whose
// state and dispatch slices are the unions of the children's. Because
// PushDown verified the split preserved the effective input set, the lifted
// binding selects exactly the names the original did, and the unit contracts
// come through untouched.
func (s *Split) Lift() (*Binding, error) {
	stateSet := make(map[string]bool)
	dispatchSet := make(map[string]bool)
	for _, child := range s.children {
		for _, name := range child.StateInputs().Names() {
			stateSet[name] = true
		}
		for _, name := range child.DispatchInputs().Names() {
			dispatchSet[name] = true
		}
	}

	state, err := Pick(s.parent, setToSorted(stateSet)...)
	if err != nil {
		return nil, err
	}
	dispatch, err := Pick(s.parent, setToSorted(dispatchSet)...)
	if err != nil {
		return nil, err
	}

	return Bind(s.parent, FromState(state), FromOwner(s.parentOwn), ToDispatch(dispatch))
}

func symmetricDiff(a, b map[string]bool) []string {
	var diff []string
	for name := range a {
		if !b[name] {
			diff = append(diff, name)
		}
	}
	for name := range b {
		if !a[name] {
			diff = append(diff, name)
		}
	}
	sort.Strings(diff)
	return diff
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
