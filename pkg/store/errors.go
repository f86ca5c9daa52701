package store

import "fmt"

// Stable violation codes for the domain/state mirror.
const (
	// CodeOrphanModule flags a child module with no matching child node in
	// the parent's state shape.
	CodeOrphanModule = "orphan_module"
	// CodeOrphanState flags a state-shape child with no matching child
	// module.
	CodeOrphanState = "orphan_state"
	// CodeSiblingRead flags a query depending on state outside the declaring
	// module's own lineage.
	CodeSiblingRead = "sibling_read"
	// CodeDuplicateModule flags sibling modules sharing a name.
	CodeDuplicateModule = "duplicate_module"
	// CodeDuplicateAction flags a module declaring an action name twice.
	CodeDuplicateAction = "duplicate_action"
	// CodeUnspecifiedShape flags a module without a declared state shape.
	CodeUnspecifiedShape = "unspecified_state_shape"
	// CodeNotFound flags a path that addresses no module.
	CodeNotFound = "module_not_found"
)

// Error is a single mirror violation, addressed by module path.
type Error struct {
	Code   string
	Path   Path
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("module %s: %s: %s", e.Path, e.Code, e.Detail)
}
