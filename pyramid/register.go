package pyramid

import (
	"github.com/hupe1980/pyramap/bitmap"
)

// Registered pyramid variants. "p64" is the recommended default; the
// remaining names pin down one axis each for benchmarking.
func init() {
	bitmap.Register("p64", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint64](universe)
	})
	bitmap.Register("p64-fixed", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint64](universe, func(o *Options) {
			o.Levels = bitmap.LevelsFixed
		})
	})
	bitmap.Register("p64-naive", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint64](universe, func(o *Options) {
			o.Search = bitmap.SearchDescendFirst
		})
	})
	bitmap.Register("p64-iter", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint64](universe, func(o *Options) {
			o.Search = bitmap.SearchIterative
		})
	})
	bitmap.Register("p32", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint32](universe)
	})
	bitmap.Register("p8", func(universe uint64) (bitmap.Bitmap, error) {
		return New[uint8](universe)
	})
}
