package starlark

import (
	"errors"
	"fmt"
	"time"

	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// buildArgs renders the fixed binding set as the positional argument tuple.
// Absent or nil entries become None. Record bindings must implement
// expr.HasFields; anything else under those names is a caller error, not a
// script failure.
func buildArgs(bindings expr.Bindings) (starlarkLib.Tuple, error) {
	names := expr.BindingNames()
	args := make(starlarkLib.Tuple, 0, len(names))
	for _, name := range names {
		raw, ok := bindings[name]
		if !ok || raw == nil {
			args = append(args, starlarkLib.None)
			continue
		}
		if expr.IsObjectBinding(name) {
			hf, ok := raw.(expr.HasFields)
			if !ok {
				return nil, fmt.Errorf(
					"%w: binding %q must implement expr.HasFields, got %T",
					ErrInvalidBinding, name, raw,
				)
			}
			args = append(args, newHasFieldsValue(hf, bindings))
			continue
		}
		value, err := marshalValue(raw, bindings)
		if err != nil {
			return nil, fmt.Errorf("%w: binding %q: %w", ErrInvalidBinding, name, err)
		}
		args = append(args, value)
	}
	return args, nil
}

// marshalValue converts a host value to its Starlark rendition. Timestamps
// are normalized to UTC, field-accessible records become lazy adapters,
// previously-unmarshalled script values pass through, and any host value
// without a richer rendition is wrapped opaquely rather than rejected.
func marshalValue(v any, bindings expr.Bindings) (starlarkLib.Value, error) {
	if v == nil {
		return starlarkLib.None, nil
	}

	switch val := v.(type) {
	case starlarkLib.Value:
		return val, nil
	case expr.Opaque:
		if sv, ok := val.Value.(starlarkLib.Value); ok {
			return sv, nil
		}
		return newObjectValue(val.Value), nil
	case expr.HasFields:
		return newHasFieldsValue(val, bindings), nil
	case bool:
		return starlarkLib.Bool(val), nil
	case int:
		return starlarkLib.MakeInt(val), nil
	case int32:
		return starlarkLib.MakeInt64(int64(val)), nil
	case int64:
		return starlarkLib.MakeInt64(val), nil
	case uint:
		return starlarkLib.MakeUint(val), nil
	case uint32:
		return starlarkLib.MakeUint64(uint64(val)), nil
	case uint64:
		return starlarkLib.MakeUint64(val), nil
	case float32:
		return starlarkLib.Float(float64(val)), nil
	case float64:
		return starlarkLib.Float(val), nil
	case string:
		return starlarkLib.String(val), nil
	case time.Time:
		return starlarkTime.Time(val.UTC()), nil
	case []any:
		elements := make([]starlarkLib.Value, len(val))
		for i, elem := range val {
			var err error
			elements[i], err = marshalValue(elem, bindings)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return starlarkLib.NewList(elements), nil
	case map[string]struct{}:
		elements := starlarkLib.NewSet(len(val))
		for k := range val {
			if err := elements.Insert(starlarkLib.String(k)); err != nil {
				return nil, fmt.Errorf("failed to insert set element: %w", err)
			}
		}
		return elements, nil
	case map[string]any:
		dict := starlarkLib.NewDict(len(val))
		for k, elem := range val {
			starlarkVal, err := marshalValue(elem, bindings)
			if err != nil {
				return nil, fmt.Errorf("failed to convert dict value: %w", err)
			}
			if err := dict.SetKey(starlarkLib.String(k), starlarkVal); err != nil {
				return nil, fmt.Errorf("failed to set dict key: %w", err)
			}
		}
		return dict, nil
	default:
		return newObjectValue(v), nil
	}
}

// unmarshalValue converts a Starlark value back to the host value set:
// nil, bool, int64, float64, string, time.Time (UTC), []any, an original
// host reference, or expr.Opaque. Integers beyond 64 bits widen to float64
// silently; iterables materialize eagerly with elements converted
// recursively.
func unmarshalValue(v starlarkLib.Value) any {
	switch val := v.(type) {
	case nil, starlarkLib.NoneType:
		return nil
	case starlarkLib.Bool:
		return bool(val)
	case starlarkLib.Int:
		if i, ok := val.Int64(); ok {
			return i
		}
		return float64(val.Float())
	case starlarkLib.Float:
		return float64(val)
	case starlarkLib.String:
		return string(val)
	case starlarkTime.Time:
		return time.Time(val).UTC()
	case *hasFieldsValue:
		return val.obj
	case *objectValue:
		return val.obj
	case *starlarkLib.Dict:
		return expr.Opaque{Value: val}
	case starlarkLib.Iterable:
		iter := val.Iterate()
		defer iter.Done()

		n := starlarkLib.Len(v)
		if n < 0 {
			n = 0
		}
		elements := make([]any, 0, n)
		var elem starlarkLib.Value
		for iter.Next(&elem) {
			elements = append(elements, unmarshalValue(elem))
		}
		return elements
	default:
		return expr.Opaque{Value: v}
	}
}

// failureMessage extracts the script-visible message from an evaluation
// failure, preferring the EvalError message over the full backtrace.
func failureMessage(err error) string {
	var evalErr *starlarkLib.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Msg
	}
	return err.Error()
}
