package cache

// EvictCallback is called with the key of an entry the backend removed. Every
// provider reports removals made to honour the size bound; the memory provider
// also reports expired and deleted entries.
type EvictCallback func(key string)

// Logger receives errors from backends whose operations cannot return them.
type Logger interface {
	Error(msg string, err error)
}

// Cache is a bounded key-value store with per-entry expiry. It backs the page
// snapshots kept for headless display sinks.
type Cache interface {
	// Get returns the value stored under key, or false when absent or expired.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any previous value and resetting its expiry.
	Set(key string, value []byte)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)

	// Len returns the number of live entries.
	Len() int

	// Close releases the backend (connections, file handles).
	Close() error
}
