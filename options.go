package pyramap

import (
	"github.com/hupe1980/pyramap/bitmap"
)

type options struct {
	width  bitmap.WordWidth
	levels bitmap.LevelPolicy
	search bitmap.SearchStrategy
}

// Option configures New.
//
// The option set mirrors the variant axes: one slot width, one level
// policy, one search strategy per bitmap.
type Option func(*options)

// WithWordWidth selects the slot width. Default is Word64.
func WithWordWidth(w bitmap.WordWidth) Option {
	return func(o *options) {
		o.width = w
	}
}

// WithLevelPolicy selects the level allocation policy. Default is
// LevelsDynamic.
func WithLevelPolicy(p bitmap.LevelPolicy) Option {
	return func(o *options) {
		o.levels = p
	}
}

// WithSearchStrategy selects the successor-search control flow. Default
// is SearchRecursive.
func WithSearchStrategy(s bitmap.SearchStrategy) Option {
	return func(o *options) {
		o.search = s
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		width:  bitmap.Word64,
		levels: bitmap.LevelsDynamic,
		search: bitmap.SearchRecursive,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
