package starlark

import (
	"context"
	"fmt"
	"log/slog"

	starlarkLib "go.starlark.net/starlark"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// Evaluable is one compiled expression bound to a shared Runtime. Instances
// are safe for concurrent use: calls are serialized by the Runtime's lock
// and per-call state lives entirely in the argument tuple.
type Evaluable struct {
	rt             *Runtime
	fn             *starlarkLib.Function
	functionName   string
	source         string
	languagePrefix string
	logHandler     slog.Handler
	logger         *slog.Logger
}

func (e *Evaluable) String() string {
	return fmt.Sprintf("starlark.Evaluable{%s}", e.functionName)
}

// GetSource returns the exact source text the expression was compiled from.
func (e *Evaluable) GetSource() string {
	return e.source
}

// GetLanguagePrefix returns the language tag this expression was parsed
// under.
func (e *Evaluable) GetLanguagePrefix() string {
	return e.languagePrefix
}

// Evaluate invokes the compiled wrapper with the bindings rendered as
// positional arguments. Failures raised by the script come back inside the
// Result; the error return is reserved for malformed bindings.
func (e *Evaluable) Evaluate(ctx context.Context, bindings expr.Bindings) (expr.Result, error) {
	logger := e.logger.WithGroup("Evaluate")

	args, err := buildArgs(bindings)
	if err != nil {
		return expr.Result{}, err
	}

	value, err := e.rt.call(ctx, e.fn, args)
	if err != nil {
		msg := failureMessage(err)
		logger.DebugContext(ctx, "expression raised", "function", e.functionName, "error", msg)
		return expr.Result{Err: expr.NewEvalError(msg)}, nil
	}
	return expr.Result{Value: unmarshalValue(value)}, nil
}
