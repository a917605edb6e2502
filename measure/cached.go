package measure

import (
	"hash/fnv"

	"github.com/gogpu/textbreak/cache"
)

// cacheKey identifies a measurement. Text and font are compared exactly.
type cacheKey struct {
	font string
	text string
}

func hashKey(k cacheKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.font))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.text))
	return h.Sum64()
}

// Cached is a read-through cache in front of another Measurer, keyed by
// (text, font description). Failed measurements are not cached.
//
// Cached is safe for concurrent use and may be shared by any number of
// wrapping calls. Two goroutines missing the same key may both call the
// underlying measurer; since measurers are deterministic, either result
// may be kept.
type Cached struct {
	m     Measurer
	cache *cache.Sharded[cacheKey, float64]
}

// NewCached wraps m with a cache holding up to capacity entries per shard
// (cache.DefaultCapacity if capacity <= 0).
func NewCached(m Measurer, capacity int) *Cached {
	return &Cached{
		m:     m,
		cache: cache.New[cacheKey, float64](capacity, hashKey),
	}
}

// MeasureWidth implements Measurer.
func (c *Cached) MeasureWidth(text, font string) (float64, error) {
	key := cacheKey{font: font, text: text}
	if w, ok := c.cache.Get(key); ok {
		return w, nil
	}
	w, err := c.m.MeasureWidth(text, font)
	if err != nil {
		return 0, err
	}
	if err := CheckWidth(w); err != nil {
		return 0, err
	}
	c.cache.Set(key, w)
	return w, nil
}

// Stats returns the cache statistics.
func (c *Cached) Stats() cache.Stats {
	return c.cache.Stats()
}

// Clear drops every cached width.
func (c *Cached) Clear() {
	c.cache.Clear()
}
