package manifest

// UnitManifest is the on-disk declaration of one view unit (unit.yaml).
// It uses "mapstructure" tags to match the YAML keys after loose parsing.
type UnitManifest struct {
	Unit string `json:"unit" mapstructure:"unit"`

	// Inputs declares required inputs as name -> type string.
	Inputs map[string]string `json:"inputs" mapstructure:"inputs"`

	// Optional declares optional inputs as name -> type string. Every entry
	// must have a matching default; the checks catch drift in either
	// direction.
	Optional map[string]string `json:"optional" mapstructure:"optional"`

	// Defaults provides the concrete default value per optional input.
	Defaults map[string]any `json:"defaults" mapstructure:"defaults"`

	// State and Context are shape declarations (name -> type string). An
	// empty map means "explicitly none"; an absent key means unspecified,
	// which the contract checks reject.
	State   map[string]string `json:"state" mapstructure:"state"`
	Context map[string]string `json:"context" mapstructure:"context"`

	// Children names the units this unit composes.
	Children []string `json:"children" mapstructure:"children"`

	// Connect is the unit's single optional connection binding.
	Connect *ConnectManifest `json:"connect,omitempty" mapstructure:"connect"`

	// Entry selects the published entry point: "plain" (default) or
	// "connected".
	Entry string `json:"entry" mapstructure:"entry"`
}

// ConnectManifest declares the three role slices by input name.
type ConnectManifest struct {
	// AllRequired aliases the state slice to the unit's full required-input
	// set instead of re-listing names.
	AllRequired bool `json:"all_required" mapstructure:"all_required"`

	State    []string `json:"state" mapstructure:"state"`
	Own      []string `json:"own" mapstructure:"own"`
	Dispatch []string `json:"dispatch" mapstructure:"dispatch"`
}

// ModuleManifest is the on-disk declaration of one domain module
// (module.yaml). Child modules live in subdirectories of the same shape.
type ModuleManifest struct {
	Module  string             `json:"module" mapstructure:"module"`
	State   StateShapeManifest `json:"state" mapstructure:"state"`
	Actions []ActionManifest   `json:"actions" mapstructure:"actions"`
	Queries []QueryManifest    `json:"queries" mapstructure:"queries"`
}

// StateShapeManifest declares the sub-state this module owns: its own fields
// and the names of child sub-states, which must mirror the subdirectories.
type StateShapeManifest struct {
	Fields   map[string]string `json:"fields" mapstructure:"fields"`
	Children []string          `json:"children" mapstructure:"children"`
}

// ActionManifest is a named operation descriptor with a payload shape.
type ActionManifest struct {
	Name    string            `json:"name" mapstructure:"name"`
	Payload map[string]string `json:"payload" mapstructure:"payload"`
}

// QueryManifest is a named derived-value descriptor with declared read paths.
type QueryManifest struct {
	Name  string   `json:"name" mapstructure:"name"`
	Reads []string `json:"reads" mapstructure:"reads"`
}
