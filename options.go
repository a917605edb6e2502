package textbreak

import (
	"github.com/gogpu/textbreak/segment"
)

// Option configures a Wrapper during creation.
//
// Example:
//
//	// Default: go-text segmentation, ellipsis truncation
//	w := textbreak.New(measure.Default())
//
//	// Hard cut, uniseg backend, shared measurement cache
//	w := textbreak.New(m,
//	    textbreak.WithTruncation(textbreak.TruncateHard),
//	    textbreak.WithSegmenter(segment.Uniseg{}),
//	    textbreak.WithCache(1024),
//	)
type Option func(*options)

// options holds optional configuration for Wrapper creation.
type options struct {
	segmenter     segment.Segmenter
	policy        TruncatePolicy
	marker        string
	collapse      bool
	cacheCapacity int
	cache         bool
	workers       int
}

// defaultOptions returns the default wrapper options.
func defaultOptions() options {
	return options{
		segmenter: segment.Default(),
		policy:    TruncateEllipsis,
		marker:    DefaultEllipsis,
	}
}

// WithSegmenter selects the segmentation backend. A nil segmenter keeps
// the default.
func WithSegmenter(s segment.Segmenter) Option {
	return func(o *options) {
		if s != nil {
			o.segmenter = s
		}
	}
}

// WithTruncation selects what happens to the last retained line when the
// line limit is exceeded.
func WithTruncation(p TruncatePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithEllipsis sets the truncation marker used by TruncateEllipsis.
// An empty marker keeps the default U+2026.
func WithEllipsis(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.marker = marker
		}
	}
}

// WithCollapseSpaces trims leading and trailing white space and collapses
// runs of U+0020 to a single space before wrapping. Grapheme offsets
// then refer to the normalized text.
func WithCollapseSpaces(collapse bool) Option {
	return func(o *options) {
		o.collapse = collapse
	}
}

// WithCache puts a measure.Cached of the given per-shard capacity in
// front of the measurer, shared by every Wrap call of the Wrapper.
// A capacity <= 0 uses cache.DefaultCapacity.
func WithCache(capacity int) Option {
	return func(o *options) {
		o.cache = true
		o.cacheCapacity = capacity
	}
}

// WithWorkers sets the number of goroutines WrapAll uses.
// Zero or a negative count uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
