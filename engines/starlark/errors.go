package starlark

import "errors"

var ErrSyntax = errors.New("starlark syntax error")
var ErrInvalidBinding = errors.New("invalid binding value")
var ErrLibraryLoad = errors.New("starlark library load failed")
var ErrNoRuntime = errors.New("starlark runtime is nil")
