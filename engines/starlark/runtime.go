package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	starlarkLib "go.starlark.net/starlark"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
	"github.com/amansingh-swe/OpenRefine-aman/internal/helpers"
)

// Runtime owns the shared Starlark interpreter state: the predeclared
// universe, preloaded library globals, and the registry of compiled wrapper
// functions. One Runtime serves any number of Evaluables; a single lock
// serializes every compile and call because the interpreter's invocation
// path is not assumed reentrant.
type Runtime struct {
	mu         sync.Mutex
	universe   starlarkLib.StringDict
	functions  map[string]*starlarkLib.Function
	libraryDir string
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewRuntime builds the shared runtime. Construction failures (a configured
// library path that does not exist, a broken library file) are fatal: there
// is no partially-initialized Runtime to retry with.
func NewRuntime(handler slog.Handler, cfg Config) (*Runtime, error) {
	handler, logger := helpers.SetupLogger(handler, "starlark", "Runtime")

	rt := &Runtime{
		universe:   standardModules(),
		functions:  make(map[string]*starlarkLib.Function),
		logHandler: handler,
		logger:     logger,
	}

	dir, found, err := cfg.resolveLibraryDir(logger)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Debug("no library directory configured or discovered")
		return rt, nil
	}

	rt.libraryDir = dir
	if err := rt.loadLibraries(dir); err != nil {
		return nil, err
	}
	logger.Debug("runtime ready", "libraryDir", dir)
	return rt, nil
}

func (rt *Runtime) String() string {
	return "starlark.Runtime"
}

// LibraryDir returns the resolved library directory, empty when none was
// found.
func (rt *Runtime) LibraryDir() string {
	return rt.libraryDir
}

// Parse implements expr.LanguageParser. It compiles source into a reusable
// Evaluable registered on this runtime; malformed source wraps
// expr.ErrParsing and registers nothing.
func (rt *Runtime) Parse(source string, languagePrefix string) (expr.Evaluable, error) {
	if rt == nil {
		return nil, ErrNoRuntime
	}

	fn, name, err := rt.compileFunction(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", expr.ErrParsing, err)
	}

	handler, logger := helpers.SetupLogger(rt.logHandler, "starlark", "Evaluable")
	rt.logger.Debug("expression compiled", "function", name, "sourceLength", len(source))
	return &Evaluable{
		rt:             rt,
		fn:             fn,
		functionName:   name,
		source:         source,
		languagePrefix: languagePrefix,
		logHandler:     handler,
		logger:         logger,
	}, nil
}

// call invokes fn under the runtime lock with a fresh thread.
func (rt *Runtime) call(
	ctx context.Context,
	fn starlarkLib.Callable,
	args starlarkLib.Tuple,
) (starlarkLib.Value, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return starlarkLib.Call(rt.newThread(ctx, "eval"), fn, args, nil)
}

func (rt *Runtime) newThread(ctx context.Context, name string) *starlarkLib.Thread {
	return &starlarkLib.Thread{
		Name: name,
		Print: func(thread *starlarkLib.Thread, msg string) {
			rt.logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}
}
