// Package validator runs the full static check over a loaded project tree:
// every unit contract, every connection binding, the entry-point registry,
// and the domain/state mirror between module directories and their declared
// state shapes.
package validator

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/graft/internal/manifest"
	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/registry"
	"github.com/aretw0/graft/pkg/schema"
	"github.com/aretw0/graft/pkg/store"
)

// Severity classifies a finding. Mirroring drift is a warning locally and an
// error in CI; everything else is an error outright.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding codes owned by the validator itself. Contract, slicing and mirror
// codes pass through from their packages.
const (
	CodeMirroringDrift = "mirroring_drift"
	CodeUnknownChild   = "unknown_child"
	CodeDuplicateEntry = "duplicate_entry"
	CodeManifestError  = "manifest_error"
)

// Finding is one addressed lint result.
type Finding struct {
	Path     string   `json:"path"` // directory relative to the project root
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the outcome of one validation run.
type Report struct {
	Digest    string    `json:"digest"`
	Units     int       `json:"units"`
	Modules   int       `json:"modules"`
	Findings  []Finding `json:"findings"`
	CheckedAt time.Time `json:"checked_at"`
}

// ErrorCount counts error-severity findings.
func (r *Report) ErrorCount() int { return r.count(SeverityError) }

// WarningCount counts warning-severity findings.
func (r *Report) WarningCount() int { return r.count(SeverityWarning) }

func (r *Report) count(s Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == s {
			n++
		}
	}
	return n
}

// Err folds the report into a single error. Warnings pass locally; with
// strict set (the CI mode) they fail too.
func (r *Report) Err(strict bool) error {
	errs := r.ErrorCount()
	warns := r.WarningCount()
	if errs == 0 && (!strict || warns == 0) {
		return nil
	}
	if strict && warns > 0 {
		return fmt.Errorf("validation failed: %d errors, %d warnings (strict)", errs, warns)
	}
	return fmt.Errorf("validation failed: %d errors", errs)
}

// Validator checks loaded trees. The zero value is not usable; use New.
type Validator struct {
	logger *slog.Logger
}

// New creates a validator logging through the given logger.
func New(logger *slog.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate runs every check over the tree and returns the report. It also
// returns the registry of units that compiled cleanly, for introspection.
func (v *Validator) Validate(tree *manifest.Tree) (*Report, *registry.Registry) {
	report := &Report{
		Digest:    tree.Digest(),
		Units:     len(tree.Units),
		CheckedAt: time.Now().UTC(),
	}
	reg := registry.New()

	known := make(map[string]bool, len(tree.Units))
	for _, u := range tree.Units {
		known[u.Manifest.Unit] = true
	}

	for _, u := range tree.Units {
		unit, binding, err := u.Compile()
		if err != nil {
			v.record(report, u.Dir, err)
			continue
		}

		for _, child := range unit.Children() {
			if !known[child] {
				report.Findings = append(report.Findings, Finding{
					Path: u.Dir, Code: CodeUnknownChild, Severity: SeverityWarning,
					Message: fmt.Sprintf("composed child %q has no unit directory", child),
				})
			}
		}

		var regErr error
		if u.Connected() {
			regErr = reg.RegisterConnected(binding)
		} else {
			regErr = reg.RegisterPlain(unit)
		}
		if regErr != nil {
			report.Findings = append(report.Findings, Finding{
				Path: u.Dir, Code: CodeDuplicateEntry, Severity: SeverityError,
				Message: regErr.Error(),
			})
		}
	}

	if tree.Modules != nil {
		v.validateModules(report, tree.Modules)
	}

	v.logger.Debug("validation finished",
		"digest", report.Digest,
		"errors", report.ErrorCount(),
		"warnings", report.WarningCount())

	return report, reg
}

func (v *Validator) validateModules(report *Report, root *manifest.ModuleDir) {
	v.checkMirror(report, root, true)

	built, err := manifest.BuildModule(root)
	if err != nil {
		v.record(report, root.Dir, err)
		return
	}

	if _, err := store.NewTree(built); err != nil {
		v.record(report, root.Dir, err)
	}
}

// checkMirror cross-checks each module directory against its declared state
// shape: subdirectory names and declared state children must agree, and each
// subdirectory's manifest must carry the directory's own name. Drift is a
// warning here; CI escalates it via strict.
func (v *Validator) checkMirror(report *Report, md *manifest.ModuleDir, isRoot bool) {
	report.Modules++

	if !isRoot && md.Manifest.Module != md.Name {
		report.Findings = append(report.Findings, Finding{
			Path: md.Dir, Code: CodeMirroringDrift, Severity: SeverityWarning,
			Message: fmt.Sprintf("directory %q declares module %q", md.Name, md.Manifest.Module),
		})
	}

	declared := make(map[string]bool, len(md.Manifest.State.Children))
	for _, name := range md.Manifest.State.Children {
		declared[name] = true
	}
	present := make(map[string]bool, len(md.Children))
	for _, child := range md.Children {
		present[child.Name] = true
	}

	for name := range declared {
		if !present[name] {
			report.Findings = append(report.Findings, Finding{
				Path: md.Dir, Code: CodeMirroringDrift, Severity: SeverityWarning,
				Message: fmt.Sprintf("state shape declares child %q but no %s/%s directory exists", name, md.Dir, name),
			})
		}
	}
	for name := range present {
		if !declared[name] {
			report.Findings = append(report.Findings, Finding{
				Path: md.Dir, Code: CodeMirroringDrift, Severity: SeverityWarning,
				Message: fmt.Sprintf("subdirectory %q is not declared in the state shape", name),
			})
		}
	}

	for _, child := range md.Children {
		v.checkMirror(report, child, false)
	}
}

// record flattens a (possibly aggregated) error into findings, preserving
// stable codes where the source carries them.
func (v *Validator) record(report *Report, path string, err error) {
	if subs := schema.ValidationErrors(err); subs != nil {
		for _, sub := range subs {
			v.record(report, path, sub)
		}
		return
	}

	finding := Finding{Path: path, Code: CodeManifestError, Severity: SeverityError, Message: err.Error()}

	var ce *contract.Error
	var se *store.Error
	switch {
	case errors.As(err, &ce):
		finding.Code = ce.Code
	case errors.As(err, &se):
		finding.Code = se.Code
	}

	report.Findings = append(report.Findings, finding)
}
