// Package graft checks the contract discipline of component trees: every
// unit's optional inputs mirror its defaults, connected units partition their
// inputs into disjoint state/own/dispatch slices, and the domain-module tree
// stays isomorphic to the state tree it manages.
//
// The typical entry point is Open, which loads a project's unit.yaml and
// module.yaml manifests, and Check, which returns a findings report:
//
//	p, err := graft.Open("./app")
//	if err != nil { ... }
//	report, err := p.Check(ctx)
//
// The subpackages under pkg/ are usable on their own for programmatic
// contract construction: pkg/contract derives unit contracts, pkg/connect
// slices and binds them, pkg/store models the domain-module tree.
package graft
