package binning

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// UserDefinedKeyer keys values through a user-supplied expression. The
// expression is compiled once at construction; every Key call binds the
// incoming value under "value" and evaluates. The constants true, false and
// PI are pre-seeded into the binding set for languages that resolve free
// names through it.
//
// One instance reuses a single mutable binding set, so concurrent Key calls
// on the same keyer require external synchronization.
type UserDefinedKeyer struct {
	eval     expr.Evaluable
	bindings expr.Bindings
}

// NewUserDefinedKeyer compiles expression through the registry. Parsing
// failures propagate to the caller unchanged.
func NewUserDefinedKeyer(registry *expr.Registry, expression string) (*UserDefinedKeyer, error) {
	eval, err := registry.Parse(expression)
	if err != nil {
		return nil, err
	}

	bindings := expr.NewBindings()
	bindings["true"] = true
	bindings["false"] = false
	bindings["PI"] = math.Pi

	return &UserDefinedKeyer{
		eval:     eval,
		bindings: bindings,
	}, nil
}

// Key evaluates the configured expression against value. The keyer is
// strictly unary: a nil value, a non-string value, or any extra parameter is
// an argument-contract violation. Evaluation failures are not Go errors here;
// their message becomes the key, the same way every other result is
// stringified.
func (k *UserDefinedKeyer) Key(ctx context.Context, value any, params ...any) (string, error) {
	if len(params) > 0 {
		return "", fmt.Errorf("%w: got %d extra parameters", ErrKeyerArgument, len(params))
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrKeyerArgument, value)
	}

	k.bindings[expr.BindingValue] = text
	res, err := k.eval.Evaluate(ctx, k.bindings)
	if err != nil {
		return "", err
	}
	if res.IsErr() {
		return res.Err.Message, nil
	}
	return stringify(res.Value), nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
