package schema

import (
	"fmt"
	"reflect"
)

// Infer derives a Type from a concrete value. It is used to project the type
// of an optional input from its declared default value, so that the default
// declaration stays the single source of truth.
//
// Inference is intentionally conservative: heterogeneous or empty composites
// fall back to element type "any" rather than guessing.
func Infer(value any) (Type, error) {
	if value == nil {
		return nil, fmt.Errorf("cannot infer a type from nil")
	}

	switch value.(type) {
	case string:
		return String(), nil
	case bool:
		return Bool(), nil
	case int, int8, int16, int32, int64:
		return Int(), nil
	case float32, float64:
		return Float(), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func:
		return Func(), nil
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return Slice(Any()), nil
		}
		elem, err := Infer(rv.Index(0).Interface())
		if err != nil {
			return nil, fmt.Errorf("slice element: %w", err)
		}
		// Heterogeneous slices degrade to [any].
		for i := 1; i < rv.Len(); i++ {
			if elem.Validate(rv.Index(i).Interface()) != nil {
				return Slice(Any()), nil
			}
		}
		return Slice(elem), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cannot infer type of %T: non-string map keys", value)
		}
		if rv.Len() == 0 {
			return Map(Any()), nil
		}
		iter := rv.MapRange()
		iter.Next()
		val, err := Infer(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("map value: %w", err)
		}
		for iter.Next() {
			if val.Validate(iter.Value().Interface()) != nil {
				return Map(Any()), nil
			}
		}
		return Map(val), nil
	default:
		return nil, fmt.Errorf("cannot infer a type from %T", value)
	}
}
