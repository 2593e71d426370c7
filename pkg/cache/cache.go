package cache

// Cache is a generic key-value cache parameterized by value type V.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the zero value and false when
	// the key is absent.
	Get(key string) (V, bool)

	// Set stores a value under key. Returns true if a new entry was
	// created, false if an existing entry was updated.
	Set(key string, value V) bool

	// Clear removes all entries.
	Clear()

	// Len returns the current number of entries.
	Len() int

	// Stats returns the cache statistics tracker.
	Stats() *Statistics
}
