package manifest

import (
	"fmt"

	"github.com/aretw0/graft/pkg/connect"
	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/schema"
	"github.com/aretw0/graft/pkg/store"
)

// Compile turns a loaded unit manifest into a compiled contract, plus the
// connection binding when the manifest declares one. All contract and slicing
// checks run here, so a returned error carries the same stable codes as the
// Go-declared path.
func (u UnitDir) Compile() (*contract.Unit, *connect.Binding, error) {
	m := u.Manifest
	if m.Unit == "" {
		return nil, nil, fmt.Errorf("%s: unit name missing", u.Dir)
	}
	switch m.Entry {
	case "", "plain", "connected":
	default:
		return nil, nil, fmt.Errorf("%s: entry must be plain or connected, got %q", u.Dir, m.Entry)
	}

	decl := contract.Decl{
		Name:     m.Unit,
		Defaults: m.Defaults,
		Children: append([]string(nil), m.Children...),
	}

	for name, typeStr := range m.Inputs {
		t, err := schema.ParseType(typeStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: input %s: %w", u.Dir, name, err)
		}
		decl.Inputs = append(decl.Inputs, contract.InputDecl{Name: name, Type: t})
	}
	for name, typeStr := range m.Optional {
		t, err := schema.ParseType(typeStr)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: optional input %s: %w", u.Dir, name, err)
		}
		decl.Inputs = append(decl.Inputs, contract.InputDecl{Name: name, Type: t, Optional: true})
	}

	if m.State != nil {
		shape, err := schema.ParseTypeMap(m.State)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: state: %w", u.Dir, err)
		}
		decl.InternalState = shape
	}
	if m.Context != nil {
		shape, err := schema.ParseTypeMap(m.Context)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: context: %w", u.Dir, err)
		}
		decl.AmbientContext = shape
	}

	unit, err := contract.Compile(decl)
	if err != nil {
		return nil, nil, err
	}

	if m.Connect == nil {
		if m.Entry == "connected" {
			return nil, nil, fmt.Errorf("%s: entry is connected but no connect block is declared", u.Dir)
		}
		return unit, nil, nil
	}

	binding, err := u.bind(unit)
	if err != nil {
		return nil, nil, err
	}
	return unit, binding, nil
}

func (u UnitDir) bind(unit *contract.Unit) (*connect.Binding, error) {
	c := u.Manifest.Connect

	var opts []connect.Option

	if c.AllRequired {
		if len(c.State) > 0 {
			return nil, fmt.Errorf("%s: connect declares both all_required and a state list", u.Dir)
		}
		opts = append(opts, connect.FromState(connect.AllRequired(unit)))
	} else if len(c.State) > 0 {
		s, err := connect.Pick(unit, c.State...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, connect.FromState(s))
	}

	if len(c.Own) > 0 {
		s, err := connect.Pick(unit, c.Own...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, connect.FromOwner(s))
	}

	if len(c.Dispatch) > 0 {
		s, err := connect.Pick(unit, c.Dispatch...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, connect.ToDispatch(s))
	}

	return connect.Bind(unit, opts...)
}

// Connected reports whether the directory publishes the connected entry.
func (u UnitDir) Connected() bool {
	return u.Manifest.Entry == "connected"
}

// BuildModule turns a loaded module hierarchy into store modules. Only
// descriptors are built; transition and query functions live in host code and
// are registered there. The result still runs through store.NewTree for the
// full mirror validation.
func BuildModule(md *ModuleDir) (*store.Module, error) {
	m := &store.Module{Name: md.Manifest.Module}

	shape := &store.Shape{Children: map[string]*store.Shape{}}
	if md.Manifest.State.Fields != nil {
		fields, err := schema.ParseTypeMap(md.Manifest.State.Fields)
		if err != nil {
			return nil, fmt.Errorf("%s: state fields: %w", md.Dir, err)
		}
		shape.Fields = fields
	}
	m.StateShape = shape

	for _, a := range md.Manifest.Actions {
		action := store.Action{Name: a.Name}
		if a.Payload != nil {
			payload, err := schema.ParseTypeMap(a.Payload)
			if err != nil {
				return nil, fmt.Errorf("%s: action %s: %w", md.Dir, a.Name, err)
			}
			action.Payload = payload
		}
		m.Actions = append(m.Actions, action)
	}

	for _, q := range md.Manifest.Queries {
		query := store.Query{Name: q.Name}
		for _, r := range q.Reads {
			query.Reads = append(query.Reads, store.ParsePath(r))
		}
		m.Queries = append(m.Queries, query)
	}

	// The built shape mirrors the directories actually present. Drift between
	// the declared state children and the directory layout is the mirror
	// lint's concern, reported once with warning severity.
	for _, child := range md.Children {
		built, err := BuildModule(child)
		if err != nil {
			return nil, err
		}
		m.Children = append(m.Children, built)
		shape.Children[built.Name] = built.StateShape
	}

	return m, nil
}
