package connect

import (
	"fmt"
	"sort"

	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/schema"
)

// Slice is a named subset of one unit's inputs, selected for a single
// connection role. Slices are only ever produced by selection (Pick,
// AllRequired), never by re-declaration, so they cannot drift from the unit's
// contract. The zero Slice is the empty selection.
type Slice struct {
	unit  *contract.Unit
	names []string // sorted, deduplicated
}

// Pick selects the named inputs from the unit. Names absent from the unit's
// input set are rejected.
func Pick(u *contract.Unit, names ...string) (Slice, error) {
	var errs []error
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := u.Input(name); !ok {
			errs = append(errs, &contract.Error{
				Code: CodeUnknownInput, Unit: u.Name(), Input: name,
				Reason: "picked input not present in the unit's inputs",
			})
		}
	}

	if len(errs) == 1 {
		return Slice{}, errs[0]
	}
	if len(errs) > 1 {
		return Slice{}, &schema.AggregateError{Errors: errs}
	}

	selected := make([]string, 0, len(seen))
	for name := range seen {
		selected = append(selected, name)
	}
	sort.Strings(selected)

	return Slice{unit: u, names: selected}, nil
}

// MustPick is Pick for package-level slice declarations; it panics on an
// invalid selection, which surfaces at init time.
func MustPick(u *contract.Unit, names ...string) Slice {
	s, err := Pick(u, names...)
	if err != nil {
		panic(fmt.Sprintf("connect: %v", err))
	}
	return s
}

// AllRequired selects the unit's full required-input set. It is the alias
// form for a unit whose every required input is sourced from shared state,
// avoiding a re-listing that could fall out of date.
func AllRequired(u *contract.Unit) Slice {
	return Slice{unit: u, names: u.RequiredNames()}
}

// Unit returns the unit this slice selects from, or nil for the empty slice.
func (s Slice) Unit() *contract.Unit { return s.unit }

// Names returns the sorted selected names.
func (s Slice) Names() []string { return append([]string(nil), s.names...) }

// Contains reports whether the slice selects the given name.
func (s Slice) Contains(name string) bool {
	i := sort.SearchStrings(s.names, name)
	return i < len(s.names) && s.names[i] == name
}

// Empty reports whether the slice selects nothing.
func (s Slice) Empty() bool { return len(s.names) == 0 }

// Len returns the number of selected names.
func (s Slice) Len() int { return len(s.names) }

// Shape exports the selected subset as a schema, so external binding code and
// tests can reference the exact selected types without re-deriving them.
func (s Slice) Shape() schema.Schema {
	shape := make(schema.Schema, len(s.names))
	for _, name := range s.names {
		if in, ok := s.unit.Input(name); ok {
			shape[name] = in.Type
		}
	}
	return shape
}
