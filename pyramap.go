package pyramap

import (
	"fmt"
	"iter"

	"github.com/hupe1980/pyramap/bitmap"
	"github.com/hupe1980/pyramap/pyramid"

	// Registered alongside the pyramid variants so NewVariant and
	// Variants cover the full table.
	_ "github.com/hupe1980/pyramap/baseline"
	_ "github.com/hupe1980/pyramap/flat"
)

// Bitmap is the five-operation contract every variant satisfies.
type Bitmap = bitmap.Bitmap

// MaxUniverse is the largest supported universe size.
const MaxUniverse = bitmap.MaxUniverse

// Variant parameters, re-exported from the contract package.
type (
	WordWidth      = bitmap.WordWidth
	LevelPolicy    = bitmap.LevelPolicy
	SearchStrategy = bitmap.SearchStrategy
)

const (
	Word64 = bitmap.Word64
	Word32 = bitmap.Word32
	Word8  = bitmap.Word8

	LevelsDynamic = bitmap.LevelsDynamic
	LevelsFixed   = bitmap.LevelsFixed

	SearchRecursive    = bitmap.SearchRecursive
	SearchDescendFirst = bitmap.SearchDescendFirst
	SearchIterative    = bitmap.SearchIterative
)

// New creates an empty pyramid bitmap for a universe of the given size.
// Options select the word width, level policy and search strategy; the
// default is the 64-bit recursive variant registered as "p64".
func New(universe uint64, optFns ...Option) (Bitmap, error) {
	o := applyOptions(optFns)

	pyramidOpts := func(po *pyramid.Options) {
		po.Levels = o.levels
		po.Search = o.search
	}

	switch o.width {
	case Word8:
		bm, err := pyramid.New[uint8](universe, pyramidOpts)
		if err != nil {
			return nil, err
		}
		return bm, nil
	case Word32:
		bm, err := pyramid.New[uint32](universe, pyramidOpts)
		if err != nil {
			return nil, err
		}
		return bm, nil
	case Word64:
		bm, err := pyramid.New[uint64](universe, pyramidOpts)
		if err != nil {
			return nil, err
		}
		return bm, nil
	default:
		return nil, fmt.Errorf("pyramap: unsupported word width %v", o.width)
	}
}

// NewVariant creates a bitmap by registry name. See Variants for the
// available names.
func NewVariant(name string, universe uint64) (Bitmap, error) {
	return bitmap.New(name, universe)
}

// Variants returns the sorted names of all registered variants.
func Variants() []string {
	return bitmap.Names()
}

// All returns an iterator over the members of b in ascending order.
func All(b Bitmap) iter.Seq[uint64] {
	return bitmap.All(b)
}
