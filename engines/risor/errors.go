package risor

import "errors"

var ErrSyntax = errors.New("risor syntax error")
var ErrInvalidBinding = errors.New("invalid binding value")
