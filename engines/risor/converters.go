package risor

import (
	"errors"
	"fmt"
	"math"
	"time"

	risorErrors "github.com/risor-io/risor/errz"
	"github.com/risor-io/risor/object"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// buildGlobals renders the fixed binding set as the VM's global map. Absent
// or nil entries become nil; record bindings must implement expr.HasFields.
func buildGlobals(bindings expr.Bindings) (map[string]any, error) {
	names := expr.BindingNames()
	globals := make(map[string]any, len(names))
	for _, name := range names {
		raw, ok := bindings[name]
		if !ok || raw == nil {
			globals[name] = object.Nil
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
			globals[name] = newHostRecord(hf, bindings)
			continue
		}
		obj, err := marshalValue(raw, bindings)
		if err != nil {
			return nil, fmt.Errorf("%w: binding %q: %w", ErrInvalidBinding, name, err)
		}
		globals[name] = obj
	}
	return globals, nil
}

// marshalValue converts a host value to its Risor object rendition.
// Timestamps normalize to UTC, records wrap lazily, previously-unmarshalled
// script values pass through, and anything else wraps opaquely.
func marshalValue(v any, bindings expr.Bindings) (object.Object, error) {
	if v == nil {
		return object.Nil, nil
	}

	switch val := v.(type) {
	case object.Object:
		return val, nil
	case expr.Opaque:
		if obj, ok := val.Value.(object.Object); ok {
			return obj, nil
		}
		return newHostOpaque(val.Value), nil
	case expr.HasFields:
		return newHostRecord(val, bindings), nil
	case bool:
		return object.NewBool(val), nil
	case int:
		return object.NewInt(int64(val)), nil
	case int32:
		return object.NewInt(int64(val)), nil
	case int64:
		return object.NewInt(val), nil
	case uint:
		return object.NewInt(int64(val)), nil
	case uint32:
		return object.NewInt(int64(val)), nil
	case uint64:
		if val > math.MaxInt64 {
			return object.NewFloat(float64(val)), nil
		}
		return object.NewInt(int64(val)), nil
	case float32:
		return object.NewFloat(float64(val)), nil
	case float64:
		return object.NewFloat(val), nil
	case string:
		return object.NewString(val), nil
	case time.Time:
		return object.NewTime(val.UTC()), nil
	case []any:
		items := make([]object.Object, len(val))
		for i, elem := range val {
			var err error
			items[i], err = marshalValue(elem, bindings)
			if err != nil {
				return nil, fmt.Errorf("failed to convert list element: %w", err)
			}
		}
		return object.NewList(items), nil
	case map[string]any:
		items := make(map[string]object.Object, len(val))
		for k, elem := range val {
			obj, err := marshalValue(elem, bindings)
			if err != nil {
				return nil, fmt.Errorf("failed to convert map value: %w", err)
			}
			items[k] = obj
		}
		return object.NewMap(items), nil
	default:
		return newHostOpaque(v), nil
	}
}

// unmarshalObject converts a Risor object back to the host value set. Maps
// and unrecognized objects stay script-native behind expr.Opaque; host
// wrappers unwrap to the original reference.
func unmarshalObject(obj object.Object) any {
	switch o := obj.(type) {
	case nil, *object.NilType:
		return nil
	case *object.Bool:
		return o.Value()
	case *object.Int:
		return o.Value()
	case *object.Float:
		return o.Value()
	case *object.String:
		return o.Value()
	case *object.Time:
		return o.Value().UTC()
	case *hostRecord:
		return o.obj
	case *hostOpaque:
		return o.obj
	case *object.List:
		items := o.Value()
		elements := make([]any, 0, len(items))
		for _, item := range items {
			elements = append(elements, unmarshalObject(item))
		}
		return elements
	case *object.Set:
		var elements []any
		for _, item := range o.Value() {
			elements = append(elements, unmarshalObject(item))
		}
		return elements
	case *object.Map:
		return expr.Opaque{Value: o}
	default:
		return expr.Opaque{Value: obj}
	}
}

// failureMessage extracts the script-visible message from an evaluation
// failure, preferring Risor's friendly rendering when available.
func failureMessage(err error) string {
	var friendlyErr risorErrors.FriendlyError
	if errors.As(err, &friendlyErr) {
		return friendlyErr.FriendlyErrorMessage()
	}
	return err.Error()
}
