package graft

import (
	"fmt"
	"sort"

	"github.com/aretw0/graft/internal/manifest"
	"github.com/aretw0/graft/pkg/schema"
	"github.com/aretw0/graft/pkg/store"
)

// UnitSummary is the shallow introspection view of one unit.
type UnitSummary struct {
	Name      string   `json:"name"`
	Dir       string   `json:"dir"`
	Connected bool     `json:"connected"`
	Required  []string `json:"required"`
	Optional  []string `json:"optional"`
}

// UnitDetail is the full introspection view of one unit: its derived contract
// plus, for connected units, the connection slices.
type UnitDetail struct {
	UnitSummary
	Inputs         map[string]string `json:"inputs"`
	Defaults       map[string]any    `json:"defaults"`
	InternalState  map[string]string `json:"internal_state"`
	AmbientContext map[string]string `json:"ambient_context"`
	Children       []string          `json:"children,omitempty"`
	Slices         *SliceDetail      `json:"slices,omitempty"`
}

// SliceDetail describes a connected unit's input partition.
type SliceDetail struct {
	State    []string `json:"state"`
	Own      []string `json:"own"`
	Dispatch []string `json:"dispatch"`
}

// ModuleSummary is the introspection view of one domain module.
type ModuleSummary struct {
	Path     string            `json:"path"`
	Name     string            `json:"name"`
	Fields   map[string]string `json:"fields"`
	Actions  []string          `json:"actions"`
	Queries  []string          `json:"queries"`
	Children []string          `json:"children,omitempty"`
}

// Units lists every unit that compiled cleanly, sorted by name.
func (p *Project) Units() []UnitSummary {
	_, reg := p.validated()

	dirs := make(map[string]string, len(p.tree.Units))
	for _, ud := range p.tree.Units {
		dirs[ud.Manifest.Unit] = ud.Dir
	}

	var out []UnitSummary
	for _, name := range reg.Names() {
		entry, err := reg.Resolve(name)
		if err != nil {
			continue
		}
		out = append(out, UnitSummary{
			Name:      name,
			Dir:       dirs[name],
			Connected: entry.Connected(),
			Required:  entry.Unit().RequiredNames(),
			Optional:  entry.Unit().OptionalNames(),
		})
	}
	return out
}

// Describe returns the full contract view of one unit.
func (p *Project) Describe(name string) (UnitDetail, error) {
	_, reg := p.validated()

	entry, err := reg.Resolve(name)
	if err != nil {
		return UnitDetail{}, err
	}
	u := entry.Unit()

	inputs := make(map[string]string, len(u.Inputs()))
	for in, decl := range u.Inputs() {
		inputs[in] = decl.Type.Name()
	}

	detail := UnitDetail{
		UnitSummary: UnitSummary{
			Name:      u.Name(),
			Connected: entry.Connected(),
			Required:  u.RequiredNames(),
			Optional:  u.OptionalNames(),
		},
		Inputs:         inputs,
		Defaults:       u.Defaults(),
		InternalState:  schemaNames(u.InternalState()),
		AmbientContext: schemaNames(u.AmbientContext()),
		Children:       u.Children(),
	}
	for _, ud := range p.tree.Units {
		if ud.Manifest.Unit == name {
			detail.Dir = ud.Dir
			break
		}
	}
	if b, ok := entry.Binding(); ok {
		detail.Slices = &SliceDetail{
			State:    b.StateInputs().Names(),
			Own:      b.OwnInputs().Names(),
			Dispatch: b.DispatchInputs().Names(),
		}
	}
	return detail, nil
}

// Modules lists every domain module in the tree, sorted by state path.
func (p *Project) Modules() ([]ModuleSummary, error) {
	if p.tree.Modules == nil {
		return nil, nil
	}
	root, err := manifest.BuildModule(p.tree.Modules)
	if err != nil {
		return nil, fmt.Errorf("module tree does not build: %w", err)
	}
	tree, err := store.NewTree(root)
	if err != nil {
		return nil, fmt.Errorf("module tree does not build: %w", err)
	}

	var out []ModuleSummary
	_ = tree.Walk(func(path store.Path, m *store.Module) error {
		s := ModuleSummary{
			Path:   path.String(),
			Name:   m.Name,
			Fields: schemaNames(m.StateShape.Fields),
		}
		for _, a := range m.Actions {
			s.Actions = append(s.Actions, a.Name)
		}
		for _, q := range m.Queries {
			s.Queries = append(s.Queries, q.Name)
		}
		for _, child := range m.Children {
			s.Children = append(s.Children, child.Name)
		}
		sort.Strings(s.Actions)
		sort.Strings(s.Queries)
		sort.Strings(s.Children)
		out = append(out, s)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func schemaNames(s schema.Schema) map[string]string {
	out := make(map[string]string, len(s))
	for _, k := range s.Keys() {
		out[k] = s[k].Name()
	}
	return out
}
