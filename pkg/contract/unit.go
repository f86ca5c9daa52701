package contract

import (
	"fmt"
	"sort"

	"github.com/aretw0/graft/pkg/schema"
)

// Input is one named entry in a unit's input set.
type Input struct {
	Name     string
	Type     schema.Type
	Optional bool
}

// InputDecl is the declarative form of an input, as parsed from a manifest
// or assembled by the builder.
type InputDecl struct {
	Name     string
	Type     schema.Type
	Optional bool
}

// Decl is the canonical declaration a Unit is compiled from. It is the only
// place where optionality and defaults can drift apart, which is exactly what
// Compile exists to reject.
type Decl struct {
	Name     string
	Inputs   []InputDecl
	Defaults map[string]any

	// InternalState and AmbientContext must be non-nil. An explicitly-empty
	// schema means "none"; nil means "not specified" and is rejected.
	InternalState  schema.Schema
	AmbientContext schema.Schema

	Children []string
}

// Unit is a compiled view-unit contract. Once compiled it is immutable: every
// accessor returns copies and the derived input set is guaranteed coherent
// (each optional input has exactly one well-typed default).
type Unit struct {
	name           string
	inputs         map[string]Input
	defaults       map[string]any
	internalState  schema.Schema
	ambientContext schema.Schema
	children       []string
}

// Compile derives a Unit from its declaration, enforcing the contract rules:
//
//   - every optional input has a non-nil default that passes its own type
//   - every default names an input that is declared optional
//   - input names are unique
//   - internal-state and ambient-context shapes are declared (possibly empty)
//
// All violations found are reported together.
func Compile(d Decl) (*Unit, error) {
	if d.Name == "" {
		return nil, &Error{Code: CodeUnexpectedInput, Unit: d.Name, Reason: "unit name must not be empty"}
	}

	var errs []error

	inputs := make(map[string]Input, len(d.Inputs))
	for _, in := range d.Inputs {
		if _, dup := inputs[in.Name]; dup {
			errs = append(errs, &Error{Code: CodeDuplicateInput, Unit: d.Name, Input: in.Name, Reason: "declared more than once"})
			continue
		}
		if in.Type == nil {
			errs = append(errs, &Error{Code: CodeInvalidValue, Unit: d.Name, Input: in.Name, Reason: "input has no type"})
			continue
		}
		inputs[in.Name] = Input(in)
	}

	// Optional inputs must each carry a default.
	for _, in := range inputs {
		if !in.Optional {
			continue
		}
		def, ok := d.Defaults[in.Name]
		if !ok {
			errs = append(errs, &Error{Code: CodeMissingDefault, Unit: d.Name, Input: in.Name, Reason: "optional input has no default"})
			continue
		}
		if def == nil {
			errs = append(errs, &Error{Code: CodeNilDefault, Unit: d.Name, Input: in.Name, Reason: "default value must not be nil"})
			continue
		}
		if err := in.Type.Validate(def); err != nil {
			errs = append(errs, &Error{Code: CodeBadDefault, Unit: d.Name, Input: in.Name, Reason: err.Error()})
		}
	}

	// Defaults must each name an optional input.
	for name := range d.Defaults {
		in, ok := inputs[name]
		if !ok {
			errs = append(errs, &Error{Code: CodeStaleDefault, Unit: d.Name, Input: name, Reason: "default for undeclared input"})
			continue
		}
		if !in.Optional {
			errs = append(errs, &Error{Code: CodeStaleDefault, Unit: d.Name, Input: name, Reason: "default for required input"})
		}
	}

	if d.InternalState == nil {
		errs = append(errs, &Error{Code: CodeUnspecifiedShape, Unit: d.Name, Reason: "internal state shape not declared; use an empty schema for none"})
	}
	if d.AmbientContext == nil {
		errs = append(errs, &Error{Code: CodeUnspecifiedShape, Unit: d.Name, Reason: "ambient context shape not declared; use an empty schema for none"})
	}

	if err := aggregate(errs); err != nil {
		return nil, err
	}

	defaults := make(map[string]any, len(d.Defaults))
	for k, v := range d.Defaults {
		defaults[k] = v
	}

	return &Unit{
		name:           d.Name,
		inputs:         inputs,
		defaults:       defaults,
		internalState:  cloneSchema(d.InternalState),
		ambientContext: cloneSchema(d.AmbientContext),
		children:       append([]string(nil), d.Children...),
	}, nil
}

// Name returns the unit name.
func (u *Unit) Name() string { return u.name }

// Input looks up a single input by name.
func (u *Unit) Input(name string) (Input, bool) {
	in, ok := u.inputs[name]
	return in, ok
}

// Inputs returns a copy of the full input set.
func (u *Unit) Inputs() map[string]Input {
	out := make(map[string]Input, len(u.inputs))
	for k, v := range u.inputs {
		out[k] = v
	}
	return out
}

// RequiredNames returns the sorted names of all required inputs.
func (u *Unit) RequiredNames() []string {
	return u.inputNames(false)
}

// OptionalNames returns the sorted names of all optional inputs. This is
// always equal to the name set of Defaults.
func (u *Unit) OptionalNames() []string {
	return u.inputNames(true)
}

func (u *Unit) inputNames(optional bool) []string {
	var names []string
	for name, in := range u.inputs {
		if in.Optional == optional {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Default returns the default value for an optional input.
func (u *Unit) Default(name string) (any, bool) {
	v, ok := u.defaults[name]
	return v, ok
}

// Defaults returns a copy of the default-value set.
func (u *Unit) Defaults() map[string]any {
	out := make(map[string]any, len(u.defaults))
	for k, v := range u.defaults {
		out[k] = v
	}
	return out
}

// InternalState returns the unit's internal state shape. It is never nil on a
// compiled unit; an empty schema means the unit declared no internal state.
func (u *Unit) InternalState() schema.Schema { return cloneSchema(u.internalState) }

// AmbientContext returns the unit's ambient context shape, never nil.
func (u *Unit) AmbientContext() schema.Schema { return cloneSchema(u.ambientContext) }

// Children returns the names of the unit's child units.
func (u *Unit) Children() []string { return append([]string(nil), u.children...) }

// IsLeaf reports whether the unit composes no children.
func (u *Unit) IsLeaf() bool { return len(u.children) == 0 }

func (u *Unit) String() string {
	return fmt.Sprintf("Unit(%s: %d required, %d optional)", u.name, len(u.RequiredNames()), len(u.defaults))
}

func cloneSchema(s schema.Schema) schema.Schema {
	if s == nil {
		return nil
	}
	out := make(schema.Schema, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
