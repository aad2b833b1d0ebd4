package starlark

import (
	"context"
	"fmt"
	"strings"

	"go.starlark.net/syntax"

	starlarkLib "go.starlark.net/starlark"

	"github.com/amansingh-swe/OpenRefine-aman/expr"
	"github.com/amansingh-swe/OpenRefine-aman/internal/helpers"
)

const functionHashLength = 12

// diagnosticName is the filename reported in syntax and runtime positions.
const diagnosticName = "<expression>"

// fileOptions returns the dialect options used for every parse and exec.
// Sets, while loops and recursion are enabled to keep the dialect close to
// the general-purpose scripting the expressions were written in.
func fileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:       true,
		While:     true,
		Recursion: true,
	}
}

// functionName derives the wrapper name from a content hash of the raw
// source, so equal sources share one compiled function and generated names
// cannot collide with user identifiers.
func functionName(source string) string {
	return fmt.Sprintf("__temp_%s__", helpers.SHA256(source)[:functionHashLength])
}

// isExpression reports whether source parses as a single expression.
func isExpression(source string) bool {
	_, err := fileOptions().ParseExpr(diagnosticName, source, 0)
	return err == nil
}

// wrapSource builds the callable definition around one snippet. A single
// expression gets an implicit return, parenthesized so its own line breaks
// survive; a statement suite is indented into the body and yields None
// unless it returns explicitly.
func wrapSource(name, source string) string {
	params := strings.Join(expr.BindingNames(), ", ")
	if isExpression(source) {
		return fmt.Sprintf("def %s(%s):\n  return (\n%s\n)\n", name, params, source)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "def %s(%s):\n", name, params)
	for _, line := range strings.Split(source, "\n") {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// compileFunction parses, resolves and initializes the wrapper definition
// under the runtime lock, memoized by generated name. The function map is
// written only after every stage has succeeded.
func (rt *Runtime) compileFunction(source string) (*starlarkLib.Function, string, error) {
	name := functionName(source)

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if fn, ok := rt.functions[name]; ok {
		rt.logger.Debug("reusing compiled function", "function", name)
		return fn, name, nil
	}

	wrapped := wrapSource(name, source)
	opts := fileOptions()
	f, err := opts.Parse(diagnosticName, []byte(wrapped), 0)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	prog, err := starlarkLib.FileProgram(f, rt.universe.Has)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	globals, err := prog.Init(rt.newThread(context.Background(), "compile"), rt.universe)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrSyntax, failureMessage(err))
	}
	globals.Freeze()

	fn, ok := globals[name].(*starlarkLib.Function)
	if !ok {
		return nil, "", fmt.Errorf("%w: wrapper %q did not produce a function", ErrSyntax, name)
	}

	rt.functions[name] = fn
	return fn, name, nil
}
