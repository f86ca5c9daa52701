package connect

import (
	"context"
	"errors"

	"github.com/aretw0/graft/pkg/contract"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/schema"
)

// Compose assembles the unit's effective props for one instantiation of the
// binding.
//
// Parent-supplied values may only name inputs in the own-role slice; a value
// for a state-sourced or dispatching input is a role mismatch. State-sourced
// inputs are read from src; a missing value is tolerated only for optional
// inputs, which fall back to their defaults. Each dispatching input resolves
// to a ports.Handler that sends the action named after the input through d.
//
// The assembled set runs through the unit's own Resolve, so type checks and
// default fallback behave exactly as for a plain composition.
func (b *Binding) Compose(own map[string]any, src ports.StateSource, d ports.Dispatcher) (map[string]any, error) {
	var errs []error

	assembled := make(map[string]any, len(own)+b.state.Len()+b.dispatch.Len())

	for name, value := range own {
		if b.own.Contains(name) {
			assembled[name] = value
			continue
		}
		if _, declared := b.unit.Input(name); declared {
			errs = append(errs, &contract.Error{
				Code: CodeRoleMismatch, Unit: b.unit.Name(), Input: name,
				Reason: "supplied by the parent but not in the own-inputs slice",
			})
			continue
		}
		errs = append(errs, &contract.Error{
			Code: contract.CodeUnexpectedInput, Unit: b.unit.Name(), Input: name,
			Reason: "not declared by the unit",
		})
	}

	if !b.state.Empty() && src == nil {
		errs = append(errs, &contract.Error{
			Code: CodeMissingSource, Unit: b.unit.Name(),
			Reason: "binding declares state inputs but no state source was supplied",
		})
	}

	var read []string
	for _, name := range b.state.Names() {
		if src == nil {
			break
		}
		value, ok := src.Value(name)
		if !ok {
			if in, _ := b.unit.Input(name); in.Optional {
				continue // falls back to the default
			}
			errs = append(errs, &contract.Error{
				Code: contract.CodeMissingRequired, Unit: b.unit.Name(), Input: name,
				Reason: "state source has no value",
			})
			continue
		}
		assembled[name] = value
		read = append(read, name)
	}

	// State-sourced values are checked against the state slice's own shape, so
	// a bad value is reported with its role rather than as a generic resolve
	// failure.
	if len(read) > 0 {
		if verr := schema.ValidateFields(b.state.Shape(), assembled, read...); verr != nil {
			for _, issue := range schema.ValidationErrors(verr) {
				var ve *schema.ValidationError
				if !errors.As(issue, &ve) {
					errs = append(errs, issue)
					continue
				}
				errs = append(errs, &contract.Error{
					Code: contract.CodeInvalidValue, Unit: b.unit.Name(), Input: ve.Key,
					Reason: "state-sourced value: " + ve.Reason,
				})
			}
		}
	}

	if !b.dispatch.Empty() && d == nil {
		errs = append(errs, &contract.Error{
			Code: CodeMissingDispatcher, Unit: b.unit.Name(),
			Reason: "binding declares dispatch inputs but no dispatcher was supplied",
		})
	} else {
		for _, name := range b.dispatch.Names() {
			action := name
			assembled[name] = ports.Handler(func(ctx context.Context, payload map[string]any) error {
				return d.Dispatch(ctx, action, payload)
			})
		}
	}

	if len(errs) == 1 {
		return nil, errs[0]
	}
	if len(errs) > 1 {
		return nil, &schema.AggregateError{Errors: errs}
	}

	return b.unit.Resolve(assembled)
}
