package cache

// Cache is the projection-result cache contract. Implementations are safe for
// concurrent use; entries expire after the backend's configured TTL.
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}
