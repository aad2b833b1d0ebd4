package binning

import "errors"

var (
	ErrKeyerArgument = errors.New("keying function accepts a single string parameter")
)
