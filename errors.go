package pyramap

import (
	"github.com/hupe1980/pyramap/bitmap"
)

var (
	// ErrInvalidUniverse is returned by constructors when the requested
	// universe size is zero or exceeds MaxUniverse.
	ErrInvalidUniverse = bitmap.ErrInvalidUniverse

	// ErrUnknownVariant is returned by NewVariant when no variant is
	// registered under the requested name.
	ErrUnknownVariant = bitmap.ErrUnknownVariant
)
