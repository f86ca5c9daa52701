package connect

// Stable violation codes for the connection layer. Violations are emitted as
// contract.Error values so callers match codes the same way across both
// layers.
const (
	// CodeUnknownInput flags a pick of a name absent from the unit's inputs.
	CodeUnknownInput = "unknown_input"
	// CodeForeignSlice flags a slice picked from a different unit than the
	// one being bound.
	CodeForeignSlice = "foreign_slice"
	// CodeOverlappingSlices flags a name claimed by more than one role.
	CodeOverlappingSlices = "overlapping_slices"
	// CodeUncoveredRequired flags a required input no role covers.
	CodeUncoveredRequired = "uncovered_required"
	// CodeRoleMismatch flags an input supplied through the wrong role.
	CodeRoleMismatch = "role_mismatch"
	// CodeMissingDispatcher flags composing dispatch inputs without a
	// dispatcher.
	CodeMissingDispatcher = "missing_dispatcher"
	// CodeMissingSource flags composing state inputs without a state source.
	CodeMissingSource = "missing_state_source"
	// CodeNotPreserving flags a push-down or lift that would change the
	// composed tree's effective input set.
	CodeNotPreserving = "not_behavior_preserving"
	// CodeForeignChild flags a push-down onto a unit the parent does not
	// compose.
	CodeForeignChild = "foreign_child"
)
