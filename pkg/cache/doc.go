// Package cache provides a generic, thread-safe LRU cache with built-in
// statistics.
//
// The cache is used by the classifier to memoize classification verdicts on
// hot error paths. It is purely a performance optimization: clearing or
// evicting entries never changes decision outcomes, only repeats work.
//
// Statistics are always enabled for observability:
//
//	c := cache.NewLRU[string](1024)
//	c.Set("key", "value")
//	v, ok := c.Get("key")
//	fmt.Println(c.Stats().HitRate())
package cache
