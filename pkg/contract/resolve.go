package contract

// Resolve computes the effective prop set for one composition of the unit.
//
// Every required input must be supplied with a well-typed value. Optional
// inputs may be omitted and fall back to their defaults; when supplied they
// override. Names outside the unit's input set are rejected. All failures are
// reported together.
func (u *Unit) Resolve(supplied map[string]any) (map[string]any, error) {
	var errs []error

	effective := make(map[string]any, len(u.inputs))

	for name, value := range supplied {
		in, ok := u.inputs[name]
		if !ok {
			errs = append(errs, &Error{Code: CodeUnexpectedInput, Unit: u.name, Input: name, Reason: "not declared by the unit"})
			continue
		}
		if err := in.Type.Validate(value); err != nil {
			errs = append(errs, &Error{Code: CodeInvalidValue, Unit: u.name, Input: name, Reason: err.Error()})
			continue
		}
		effective[name] = value
	}

	for name, in := range u.inputs {
		if _, ok := effective[name]; ok {
			continue
		}
		if in.Optional {
			effective[name] = u.defaults[name]
			continue
		}
		if _, wasSupplied := supplied[name]; !wasSupplied {
			errs = append(errs, &Error{Code: CodeMissingRequired, Unit: u.name, Input: name, Reason: "required input not supplied"})
		}
	}

	if err := aggregate(errs); err != nil {
		return nil, err
	}
	return effective, nil
}
