// Package schema provides the type system underneath graft contracts.
//
// It defines a simple set of value types (string, int, float, bool, func)
// with support for slices, maps and custom validators. Schemas map input
// names to types, enabling validation of loosely-typed data such as parsed
// manifests or composition-time prop sets.
//
// Basic usage:
//
//	shape := schema.Schema{
//	    "title": schema.String(),
//	    "width": schema.Int(),
//	    "tags":  schema.Slice(schema.String()),
//	}
//
//	data := map[string]any{
//	    "title": "Settings",
//	    "width": 600,
//	    "tags":  []string{"dialog", "modal"},
//	}
//
//	if err := schema.Validate(shape, data); err != nil {
//	    // Handle validation errors
//	}
//
// Schemas can be created programmatically or parsed from type strings, the
// form used by unit.yaml and module.yaml manifests:
//
//	shape, err := schema.ParseTypeMap(map[string]string{
//	    "title": "string",
//	    "width": "int",
//	    "tags":  "[string]",
//	})
//
// Infer goes the other way: it derives a Type from a concrete value. The
// contract layer uses it to project the type of an optional input from its
// default value, keeping the defaults declaration authoritative.
//
// This package has zero dependencies beyond the Go standard library and can
// be embedded in larger systems on its own.
package schema
