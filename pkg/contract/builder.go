package contract

import (
	"fmt"

	"github.com/aretw0/graft/pkg/schema"
)

// Builder assembles a unit declaration in Go code. It is the in-process
// counterpart to a unit.yaml manifest.
//
// Optional inputs take their type from the default value itself, so the
// builder cannot produce a missing or stale default by construction. The
// declarative path (Compile over a hand-built Decl, or a parsed manifest)
// is where those violations are possible and get caught.
type Builder struct {
	decl Decl
	errs []error
}

// New starts a builder for a unit with the given name. Internal state and
// ambient context start explicitly empty; use State and Context to declare
// non-empty shapes.
func New(name string) *Builder {
	return &Builder{
		decl: Decl{
			Name:           name,
			Defaults:       map[string]any{},
			InternalState:  schema.Schema{},
			AmbientContext: schema.Schema{},
		},
	}
}

// Require declares a required input with an explicit type.
func (b *Builder) Require(name string, t schema.Type) *Builder {
	b.decl.Inputs = append(b.decl.Inputs, InputDecl{Name: name, Type: t})
	return b
}

// Optional declares an optional input. Its type is inferred from the default
// value, keeping the default declaration authoritative.
func (b *Builder) Optional(name string, def any) *Builder {
	t, err := schema.Infer(def)
	if err != nil {
		b.errs = append(b.errs, &Error{Code: CodeBadDefault, Unit: b.decl.Name, Input: name, Reason: fmt.Sprintf("cannot infer type: %v", err)})
		return b
	}
	return b.OptionalTyped(name, t, def)
}

// OptionalTyped declares an optional input with an explicit type and default,
// for cases where inference is too loose (e.g. a custom validator).
func (b *Builder) OptionalTyped(name string, t schema.Type, def any) *Builder {
	b.decl.Inputs = append(b.decl.Inputs, InputDecl{Name: name, Type: t, Optional: true})
	b.decl.Defaults[name] = def
	return b
}

// State declares the unit's internal state shape.
func (b *Builder) State(s schema.Schema) *Builder {
	b.decl.InternalState = s
	return b
}

// Context declares the unit's ambient context shape.
func (b *Builder) Context(s schema.Schema) *Builder {
	b.decl.AmbientContext = s
	return b
}

// Child declares composed child units by name.
func (b *Builder) Child(names ...string) *Builder {
	b.decl.Children = append(b.decl.Children, names...)
	return b
}

// Build compiles the declaration into a Unit.
func (b *Builder) Build() (*Unit, error) {
	if err := aggregate(b.errs); err != nil {
		return nil, err
	}
	return Compile(b.decl)
}

// MustBuild is Build for package-level unit declarations; it panics on a
// broken contract, which surfaces at init time.
func (b *Builder) MustBuild() *Unit {
	u, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("contract: %v", err))
	}
	return u
}
