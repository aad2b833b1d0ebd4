// Package binning provides canonicalization keyers for value clustering. A
// keyer maps a value to a normalized string key so that near-duplicate values
// land in the same bin; the grouping algorithm consuming the keys lives
// outside this module.
package binning

import "context"

// Keyer produces the canonical key for a value. Extra parameters are part of
// the general contract; individual keyers may reject them.
type Keyer interface {
	Key(ctx context.Context, value any, params ...any) (string, error)
}
