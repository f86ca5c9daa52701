package connect

import (
	"sort"

	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/schema"
)

// Binding connects one unit to shared state and a dispatch channel through
// three disjoint role slices. A valid binding guarantees every required input
// of the unit is covered by exactly one role; optional inputs may stay
// uncovered and fall back to the unit's defaults.
type Binding struct {
	unit     *contract.Unit
	state    Slice
	own      Slice
	dispatch Slice
}

// Option configures a Bind call. Roles not set default to the empty slice,
// which is how units with no parent-supplied or no dispatching inputs omit
// them.
type Option func(*Binding)

// FromState assigns the state-sourced role.
func FromState(s Slice) Option {
	return func(b *Binding) { b.state = s }
}

// FromOwner assigns the parent-supplied role.
func FromOwner(s Slice) Option {
	return func(b *Binding) { b.own = s }
}

// ToDispatch assigns the dispatching role.
func ToDispatch(s Slice) Option {
	return func(b *Binding) { b.dispatch = s }
}

// Bind validates the three role slices against the unit and each other:
// every slice must be picked from this unit, the roles must be pairwise
// disjoint, and their union must cover all required inputs.
func Bind(u *contract.Unit, opts ...Option) (*Binding, error) {
	b := &Binding{unit: u}
	for _, opt := range opts {
		opt(b)
	}

	var errs []error

	roles := []struct {
		name  string
		slice Slice
	}{{"state", b.state}, {"own", b.own}, {"dispatch", b.dispatch}}

	for _, r := range roles {
		if !r.slice.Empty() && r.slice.Unit() != u {
			errs = append(errs, &contract.Error{
				Code: CodeForeignSlice, Unit: u.Name(),
				Reason: r.name + " slice was picked from a different unit",
			})
		}
	}

	claimed := make(map[string]string, b.state.Len()+b.own.Len()+b.dispatch.Len())
	claim := func(role string, s Slice) {
		for _, name := range s.Names() {
			if prev, taken := claimed[name]; taken {
				errs = append(errs, &contract.Error{
					Code: CodeOverlappingSlices, Unit: u.Name(), Input: name,
					Reason: "claimed by both " + prev + " and " + role,
				})
				continue
			}
			claimed[name] = role
		}
	}
	for _, r := range roles {
		claim(r.name, r.slice)
	}

	for _, name := range u.RequiredNames() {
		if _, ok := claimed[name]; !ok {
			errs = append(errs, &contract.Error{
				Code: CodeUncoveredRequired, Unit: u.Name(), Input: name,
				Reason: "required input covered by no role",
			})
		}
	}

	switch len(errs) {
	case 0:
		return b, nil
	case 1:
		return nil, errs[0]
	default:
		return nil, &schema.AggregateError{Errors: errs}
	}
}

// Unit returns the bound unit.
func (b *Binding) Unit() *contract.Unit { return b.unit }

// StateInputs returns the state-sourced role slice.
func (b *Binding) StateInputs() Slice { return b.state }

// OwnInputs returns the parent-supplied role slice.
func (b *Binding) OwnInputs() Slice { return b.own }

// DispatchInputs returns the dispatching role slice.
func (b *Binding) DispatchInputs() Slice { return b.dispatch }

// EffectiveNames returns the sorted union of all three role slices. This is
// the externally observable input set the binding sources on the unit's
// behalf.
func (b *Binding) EffectiveNames() []string {
	union := append(b.state.Names(), b.own.Names()...)
	union = append(union, b.dispatch.Names()...)
	sort.Strings(union)
	return union
}
