// Package refine wires the expression backends of a data-cleaning host into
// a ready-to-use language registry. Expressions arrive as "language:source"
// text; the registry routes them to the Starlark runtime (the default
// language) or the Risor engine and hands back a compiled, reusable
// Evaluable.
package refine

import (
	"log/slog"

	"github.com/amansingh-swe/OpenRefine-aman/engines/risor"
	"github.com/amansingh-swe/OpenRefine-aman/engines/starlark"
	"github.com/amansingh-swe/OpenRefine-aman/expr"
)

// Language tags registered by DefaultRegistry.
const (
	LangStarlark = "starlark"
	LangRisor    = "risor"
)

// DefaultRegistry builds the standard registry: a fresh Starlark runtime
// configured by cfg plus the Risor engine, with Starlark as the default
// language. Runtime construction failures are fatal and propagate.
func DefaultRegistry(handler slog.Handler, cfg starlark.Config) (*expr.Registry, error) {
	rt, err := starlark.NewRuntime(handler, cfg)
	if err != nil {
		return nil, err
	}
	return RegistryWithRuntime(handler, rt)
}

// RegistryWithRuntime wires an existing Starlark runtime plus the Risor
// engine into a registry with Starlark as the default language. Use this
// over DefaultRegistry when the caller needs to keep a handle on the runtime.
func RegistryWithRuntime(handler slog.Handler, rt *starlark.Runtime) (*expr.Registry, error) {
	registry := expr.NewRegistry(handler)
	if err := registry.Register(LangStarlark, rt); err != nil {
		return nil, err
	}
	if err := registry.Register(LangRisor, risor.New(handler)); err != nil {
		return nil, err
	}
	if err := registry.SetDefaultLanguage(LangStarlark); err != nil {
		return nil, err
	}
	return registry, nil
}

// FromStarlarkString compiles a Starlark expression on an existing runtime.
func FromStarlarkString(rt *starlark.Runtime, source string) (expr.Evaluable, error) {
	return rt.Parse(source, LangStarlark)
}

// FromRisorString compiles a Risor expression.
func FromRisorString(handler slog.Handler, source string) (expr.Evaluable, error) {
	return risor.New(handler).Parse(source, LangRisor)
}
