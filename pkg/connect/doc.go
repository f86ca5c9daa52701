// Package connect binds view units to a shared state tree and a dispatch
// channel through three disjoint role slices: state-sourced inputs,
// parent-supplied inputs, and dispatching inputs.
//
// Slices are produced only by name-based selection from the unit's own input
// set (Pick, AllRequired), never re-declared, so a binding cannot claim to
// supply something the unit does not take. Bind validates the three roles
// against each other: pairwise disjoint, union covering every required input.
//
//	statePart := connect.MustPick(panel, "title")
//	ownPart := connect.MustPick(panel, "id")
//	acts := connect.MustPick(panel, "onSave")
//
//	binding, err := connect.Bind(panel,
//	    connect.FromState(statePart),
//	    connect.FromOwner(ownPart),
//	    connect.ToDispatch(acts),
//	)
//
// Compose instantiates the binding: parent values are role-checked, state
// values are read through ports.StateSource, and each dispatch input resolves
// to a handler that sends the action of the same name through
// ports.Dispatcher.
//
// PushDown and Lift implement the boundary refactor: when a connected
// parent's state and dispatch selection grows too broad for good change
// isolation, the binding moves down onto the children (each with a strictly
// smaller, independently selected slice) and can move back up later. Both
// directions verify the union of effective inputs is unchanged and neither
// touches any unit's own contract.
package connect
