package starlark

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// hasFieldsValue adapts a host record into a Starlark value with lazy,
// by-name attribute access. Field reads happen only when the script touches
// an attribute, and the results are marshalled on demand.
type hasFieldsValue struct {
	obj      expr.HasFields
	bindings expr.Bindings
}

func newHasFieldsValue(obj expr.HasFields, bindings expr.Bindings) *hasFieldsValue {
	return &hasFieldsValue{obj: obj, bindings: bindings}
}

func (v *hasFieldsValue) String() string {
	return fmt.Sprintf("<fields %T>", v.obj)
}

func (v *hasFieldsValue) Type() string {
	return "fields"
}

func (v *hasFieldsValue) Freeze() {}

func (v *hasFieldsValue) Truth() starlarkLib.Bool {
	return starlarkLib.Bool(v.obj != nil)
}

func (v *hasFieldsValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", v.Type())
}

// Attr reads the named field from the host record. Unknown or nil fields
// come back as None rather than raising.
func (v *hasFieldsValue) Attr(name string) (starlarkLib.Value, error) {
	if v.obj == nil {
		return starlarkLib.None, nil
	}
	return marshalValue(v.obj.GetField(name, v.bindings), v.bindings)
}

func (v *hasFieldsValue) AttrNames() []string {
	return nil
}

// objectValue carries an arbitrary host value through the script opaquely.
// Scripts can pass it around and bind it into later evaluations; the host
// gets the original reference back on unmarshal.
type objectValue struct {
	obj any
}

func newObjectValue(obj any) *objectValue {
	return &objectValue{obj: obj}
}

func (v *objectValue) String() string {
	return fmt.Sprintf("<host %T>", v.obj)
}

func (v *objectValue) Type() string {
	return "hostobject"
}

func (v *objectValue) Freeze() {}

func (v *objectValue) Truth() starlarkLib.Bool {
	return starlarkLib.True
}

func (v *objectValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", v.Type())
}
