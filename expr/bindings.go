package expr

// Binding names passed positionally, in this order, to every compiled
// expression. The first is the cell value under evaluation; cell, cells and
// row carry field-accessible records; rowIndex is the zero-based row number;
// value1 and value2 are the comparison operands used by pairwise operations.
const (
	BindingValue    = "value"
	BindingCell     = "cell"
	BindingCells    = "cells"
	BindingRow      = "row"
	BindingRowIndex = "rowIndex"
	BindingValue1   = "value1"
	BindingValue2   = "value2"
)

var bindingNames = [...]string{
	BindingValue,
	BindingCell,
	BindingCells,
	BindingRow,
	BindingRowIndex,
	BindingValue1,
	BindingValue2,
}

// Bindings is the named context handed to an evaluation. Entries may be
// absent; absent or nil entries are presented to the script as its null
// value. Keys outside the fixed binding set are permitted and ignored by the
// invocation path, so callers may stash extra lookup state (the keyer's
// constants, for example) in the same map.
type Bindings map[string]any

// NewBindings returns an empty binding set.
func NewBindings() Bindings {
	return make(Bindings, len(bindingNames))
}

// BindingNames returns the fixed binding names in invocation order.
func BindingNames() []string {
	names := make([]string, len(bindingNames))
	copy(names, bindingNames[:])
	return names
}

// IsObjectBinding reports whether the named binding carries a
// field-accessible host record rather than a plain value. Record bindings
// must satisfy HasFields when present and non-nil.
func IsObjectBinding(name string) bool {
	switch name {
	case BindingCell, BindingCells, BindingRow:
		return true
	}
	return false
}
