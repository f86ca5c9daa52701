// Package store models the domain-module hierarchy that mirrors the state
// tree.
//
// Each Module owns the sub-state at one path: its action descriptors,
// transition logic and derived-value queries all scope to that path. The
// mirroring invariant is structural and checked at construction: at every
// level, the names of a module's children equal the names of its state
// shape's children, so for a module at path p the children correspond exactly
// to the named children of the state node at p. A "user/session" module
// manages exactly the state reachable at state.user.session.
//
// Two consequences the checks enforce:
//
//   - queries declare the paths they read and may only depend on their own
//     lineage (self, ancestors, descendants), never on sibling sub-state, so
//     the mirror bounds a module's blast radius;
//   - extraction is all-or-nothing: Extract detaches a module together with
//     its child modules and the state shape they jointly describe, because
//     the invariant requires them to travel together.
//
// Transitions receive and return only the sub-state at their own path.
// Composing them into a whole-tree transition is the external store runtime's
// responsibility; the reference implementation in pkg/adapters/memory shows
// the expected wiring.
package store
