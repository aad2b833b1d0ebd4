package risor

import (
	"context"
	"fmt"
	"log/slog"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// Evaluable is one compiled Risor expression. Each Evaluate call runs the
// bytecode on a fresh VM with the bindings installed as globals, so instances
// are safe for concurrent use without any shared lock.
type Evaluable struct {
	code           *risorCompiler.Code
	id             string
	source         string
	languagePrefix string
	logHandler     slog.Handler
	logger         *slog.Logger
}

func (e *Evaluable) String() string {
	return fmt.Sprintf("risor.Evaluable{%s}", e.id)
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

// Evaluate runs the bytecode with the bindings as VM globals. The script's
// value is the value of its final expression; failures raised by the script
// come back inside the Result.
func (e *Evaluable) Evaluate(ctx context.Context, bindings expr.Bindings) (expr.Result, error) {
	logger := e.logger.WithGroup("Evaluate")

	globals, err := buildGlobals(bindings)
	if err != nil {
		return expr.Result{}, err
	}

	value, err := risorLib.EvalCode(ctx, e.code, risorLib.WithGlobals(globals))
	if err != nil {
		msg := failureMessage(err)
		logger.DebugContext(ctx, "expression raised", "id", e.id, "error", msg)
		return expr.Result{Err: expr.NewEvalError(msg)}, nil
	}
	return expr.Result{Value: unmarshalObject(value)}, nil
}
