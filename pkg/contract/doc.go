// Package contract implements the prop-contract discipline for view units.
//
// A view unit declares four related shapes: its input set (each entry
// required or optional), its default-value set, its internal state, and its
// ambient context. The package derives and checks them from one canonical
// declaration so the shapes cannot drift apart: the name set of the defaults
// is provably equal to the name set of the optional inputs, and every default
// value satisfies its input's declared type.
//
// Units are declared either with the fluent builder:
//
//	panel := contract.New("Panel").
//	    Require("id", schema.String()).
//	    Require("onSave", schema.Func()).
//	    Optional("width", 600).
//	    Optional("height", 400).
//	    MustBuild()
//
// or declaratively (the form unit.yaml manifests compile through):
//
//	unit, err := contract.Compile(contract.Decl{
//	    Name: "Panel",
//	    Inputs: []contract.InputDecl{
//	        {Name: "id", Type: schema.String()},
//	        {Name: "width", Type: schema.Int(), Optional: true},
//	    },
//	    Defaults:       map[string]any{"width": 600},
//	    InternalState:  schema.Schema{},
//	    AmbientContext: schema.Schema{},
//	})
//
// Compile rejects every way the shapes can disagree before the unit can be
// composed: an optional input without a default, a default for an input that
// is no longer optional, a default that fails its own type, a nil default,
// and an omitted state or context shape (declaring "none" takes an explicitly
// empty schema, so consumers can tell "no internal state" from "not yet
// specified").
//
// Resolve computes the effective props for one composition: required inputs
// must be present and well-typed, optional inputs fall back to their
// defaults.
package contract
