package cache

// instrumentedCache counts hits and misses of the wrapped cache and exposes its
// size. Evictions are counted by the OnEvict hook installed in New.
type instrumentedCache struct {
	inner Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntries(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		lookupsTotal.WithLabelValues(c.group, "hit").Inc()
	} else {
		lookupsTotal.WithLabelValues(c.group, "miss").Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Delete(key string) {
	c.inner.Delete(key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

func (c *instrumentedCache) Close() error {
	unregisterEntries(c.group)
	return c.inner.Close()
}
