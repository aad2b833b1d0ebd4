// Package expr defines the engine-neutral contracts of the expression
// subsystem: the Evaluable capability produced by language parsers, the fixed
// binding set handed to every invocation, the host-side value variants
// returned by evaluation, and the registry that maps language tags to their
// parsers.
package expr

import (
	"context"
	"fmt"
)

// Evaluable is a compiled expression bound to one script engine, ready to be
// invoked any number of times with different bindings.
type Evaluable interface {
	// Evaluate invokes the compiled expression with the given bindings and
	// returns the outcome. Failures raised by the script itself are reported
	// in the Result, not in the error return; a non-nil error means the call
	// was malformed (for example a record binding that does not implement
	// HasFields) and the expression was never invoked.
	Evaluate(ctx context.Context, bindings Bindings) (Result, error)

	// GetSource returns the exact source text the expression was compiled
	// from, without the language prefix.
	GetSource() string

	// GetLanguagePrefix returns the language tag this expression was parsed
	// under, e.g. "starlark".
	GetLanguagePrefix() string
}

// Result is the outcome of one evaluation. Exactly one of Value and Err is
// meaningful: when Err is non-nil the script raised a runtime failure and
// Value is nil.
type Result struct {
	Value any
	Err   *EvalError
}

// IsErr reports whether the evaluation raised a runtime failure.
func (r Result) IsErr() bool {
	return r.Err != nil
}

// Opaque carries a script-native value that has no member in the host value
// set. The wrapped value is returned to the originating engine unchanged when
// bound into a later evaluation.
type Opaque struct {
	Value any
}

func (o Opaque) String() string {
	return fmt.Sprintf("%v", o.Value)
}
