package refine_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	refine "github.com/amansingh-swe/OpenRefine-aman"
	"github.com/amansingh-swe/OpenRefine-aman/engines/starlark"
	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// Helper functions for tests
func getLogger() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry, err := refine.DefaultRegistry(getLogger(), starlark.Config{})
	require.NoError(t, err, "Should create the registry successfully")
	require.Equal(t, []string{refine.LangRisor, refine.LangStarlark}, registry.Languages())

	t.Run("unprefixed text parses as starlark", func(t *testing.T) {
		t.Parallel()
		ev, err := registry.Parse("value.strip().lower()")
		require.NoError(t, err)
		require.Equal(t, refine.LangStarlark, ev.GetLanguagePrefix())

		bindings := expr.NewBindings()
		bindings[expr.BindingValue] = " Foo "
		res, err := ev.Evaluate(context.Background(), bindings)
		require.NoError(t, err)
		require.Equal(t, "foo", res.Value)
	})

	t.Run("risor prefix routes to the risor engine", func(t *testing.T) {
		t.Parallel()
		ev, err := registry.Parse("risor:value + 1")
		require.NoError(t, err)
		require.Equal(t, refine.LangRisor, ev.GetLanguagePrefix())
		require.Equal(t, "value + 1", ev.GetSource())

		bindings := expr.NewBindings()
		bindings[expr.BindingValue] = 41
		res, err := ev.Evaluate(context.Background(), bindings)
		require.NoError(t, err)
		require.Equal(t, int64(42), res.Value)
	})

	t.Run("script failures come back as values", func(t *testing.T) {
		t.Parallel()
		ev, err := registry.Parse("value / 0")
		require.NoError(t, err)

		bindings := expr.NewBindings()
		bindings[expr.BindingValue] = 1
		res, err := ev.Evaluate(context.Background(), bindings)
		require.NoError(t, err, "Runtime failures must not surface as Go errors")
		require.True(t, res.IsErr())
		require.NotEmpty(t, res.Err.Message)
	})
}

func TestRegistryWithRuntime(t *testing.T) {
	t.Parallel()

	rt, err := starlark.NewRuntime(getLogger(), starlark.Config{})
	require.NoError(t, err)

	registry, err := refine.RegistryWithRuntime(getLogger(), rt)
	require.NoError(t, err)

	ev, err := registry.Parse("value1 + value2")
	require.NoError(t, err)

	bindings := expr.NewBindings()
	bindings[expr.BindingValue1] = 40
	bindings[expr.BindingValue2] = 2
	res, err := ev.Evaluate(context.Background(), bindings)
	require.NoError(t, err)
	require.Equal(t, int64(42), res.Value)
}

func TestFromStarlarkString(t *testing.T) {
	t.Parallel()

	rt, err := starlark.NewRuntime(getLogger(), starlark.Config{})
	require.NoError(t, err)

	ev, err := refine.FromStarlarkString(rt, `value1 + " " + value2`)
	require.NoError(t, err)
	require.Equal(t, refine.LangStarlark, ev.GetLanguagePrefix())

	bindings := expr.NewBindings()
	bindings[expr.BindingValue1] = "hello"
	bindings[expr.BindingValue2] = "world"
	res, err := ev.Evaluate(context.Background(), bindings)
	require.NoError(t, err)
	require.Equal(t, "hello world", res.Value)
}

func TestFromRisorString(t *testing.T) {
	t.Parallel()

	ev, err := refine.FromRisorString(getLogger(), "value * 2")
	require.NoError(t, err)
	require.Equal(t, refine.LangRisor, ev.GetLanguagePrefix())

	bindings := expr.NewBindings()
	bindings[expr.BindingValue] = 21
	res, err := ev.Evaluate(context.Background(), bindings)
	require.NoError(t, err)
	require.Equal(t, int64(42), res.Value)
}

func TestQuickStart(t *testing.T) {
	t.Parallel()

	registry, err := refine.DefaultRegistry(getLogger(), starlark.Config{})
	require.NoError(t, err)

	ev, err := registry.Parse(`value.split(",")[rowIndex].strip()`)
	require.NoError(t, err)

	bindings := expr.NewBindings()
	bindings[expr.BindingValue] = "alpha, beta , gamma"
	bindings[expr.BindingRowIndex] = 1

	res, err := ev.Evaluate(context.Background(), bindings)
	require.NoError(t, err)
	require.False(t, res.IsErr())
	require.Equal(t, "beta", res.Value)
}
