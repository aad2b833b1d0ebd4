package risor

import (
	"fmt"

	"github.com/risor-io/risor/object"
	"github.com/risor-io/risor/op"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// hostRecord adapts a host record into a Risor object with lazy, by-name
// attribute access. Field reads happen only when the script touches an
// attribute; unknown or nil fields read as nil rather than raising.
type hostRecord struct {
	obj      expr.HasFields
	bindings expr.Bindings
}

func newHostRecord(obj expr.HasFields, bindings expr.Bindings) *hostRecord {
	return &hostRecord{obj: obj, bindings: bindings}
}

func (r *hostRecord) Type() object.Type {
	return "fields"
}

func (r *hostRecord) Inspect() string {
	return fmt.Sprintf("fields(%T)", r.obj)
}

func (r *hostRecord) Interface() interface{} {
	return r.obj
}

func (r *hostRecord) Equals(other object.Object) object.Object {
	if o, ok := other.(*hostRecord); ok && o.obj == r.obj {
		return object.True
	}
	return object.False
}

func (r *hostRecord) GetAttr(name string) (object.Object, bool) {
	if r.obj == nil {
		return object.Nil, true
	}
	val, err := marshalValue(r.obj.GetField(name, r.bindings), r.bindings)
	if err != nil {
		return object.NewError(err), true
	}
	return val, true
}

func (r *hostRecord) SetAttr(name string, _ object.Object) error {
	return fmt.Errorf("cannot set %q on a fields object", name)
}

func (r *hostRecord) IsTruthy() bool {
	return r.obj != nil
}

func (r *hostRecord) RunOperation(opType op.BinaryOpType, _ object.Object) object.Object {
	return object.Errorf("type error: unsupported operation for fields object: %v", opType)
}

func (r *hostRecord) Cost() int {
	return 0
}

// hostOpaque carries an arbitrary host value through the script opaquely.
// Scripts can pass it around and bind it into later evaluations; the host
// gets the original reference back on unmarshal.
type hostOpaque struct {
	obj any
}

func newHostOpaque(obj any) *hostOpaque {
	return &hostOpaque{obj: obj}
}

func (h *hostOpaque) Type() object.Type {
	return "hostobject"
}

func (h *hostOpaque) Inspect() string {
	return fmt.Sprintf("hostobject(%T)", h.obj)
}

func (h *hostOpaque) Interface() interface{} {
	return h.obj
}

func (h *hostOpaque) Equals(other object.Object) object.Object {
	if o, ok := other.(*hostOpaque); ok && o.obj == h.obj {
		return object.True
	}
	return object.False
}

func (h *hostOpaque) GetAttr(_ string) (object.Object, bool) {
	return nil, false
}

func (h *hostOpaque) SetAttr(name string, _ object.Object) error {
	return fmt.Errorf("cannot set %q on a host object", name)
}

func (h *hostOpaque) IsTruthy() bool {
	return h.obj != nil
}

func (h *hostOpaque) RunOperation(opType op.BinaryOpType, _ object.Object) object.Object {
	return object.Errorf("type error: unsupported operation for host object: %v", opType)
}

func (h *hostOpaque) Cost() int {
	return 0
}
