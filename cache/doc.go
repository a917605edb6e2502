// Package cache provides a generic, concurrency-safe sharded LRU cache.
//
// textbreak uses it to share grapheme widths across wrapping calls: the
// width of a grapheme under a font description is a pure function, so
// results can be reused by every goroutine that wraps text with the same
// measurer.
//
//	c := cache.New[string, float64](256, cache.StringHasher)
//	c.Set("W", 9.44)
//	w, ok := c.Get("W")
//
// # Thread Safety
//
// Sharded is safe for concurrent use. Each of its 16 shards has its own
// RWMutex and LRU list; an entry becomes visible only after it has been
// stored whole under the shard lock. Sharded must not be copied after
// creation.
package cache
