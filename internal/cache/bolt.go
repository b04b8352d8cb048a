package cache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketEntries = []byte("entries")

// expiryPrefixLen is the size of the expiry stamp stored before each value.
const expiryPrefixLen = 8

func init() {
	Register("bolt", newBoltCache)
}

// boltCache persists entries in a single BoltDB bucket so snapshots survive
// restarts. Each value is stored as an 8-byte big-endian expiry (unix nanos)
// followed by the payload; expired entries are removed lazily.
type boltCache struct {
	db      *bolt.DB
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	now     func() time.Time
}

func newBoltCache(cfg ProviderConfig) (Cache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("bolt cache: path is required")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("bolt cache: create directory: %w", err)
		}
	}

	db, err := bolt.Open(cfg.Path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltCache{
		db:      db,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		now:     time.Now,
	}, nil
}

func (b *boltCache) logError(msg string, err error) {
	if b.logger != nil {
		b.logger.Error(msg, err)
	}
}

func (b *boltCache) expired(raw []byte, now time.Time) bool {
	if len(raw) < expiryPrefixLen {
		return true
	}
	return int64(binary.BigEndian.Uint64(raw[:expiryPrefixLen])) <= now.UnixNano()
}

func (b *boltCache) Get(key string) ([]byte, bool) {
	var (
		value []byte
		found bool
		stale bool
	)
	now := b.now()

	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketEntries).Get([]byte(key))
		if raw == nil {
			return nil
		}
		if b.expired(raw, now) {
			stale = true
			return nil
		}
		// raw is only valid inside the transaction
		value = bytes.Clone(raw[expiryPrefixLen:])
		found = true
		return nil
	})
	if err != nil {
		b.logError("bolt cache Get failed", err)
		return nil, false
	}

	if stale {
		b.Delete(key)
		return nil, false
	}
	return value, found
}

func (b *boltCache) Set(key string, value []byte) {
	now := b.now()
	raw := make([]byte, expiryPrefixLen+len(value))
	binary.BigEndian.PutUint64(raw, uint64(now.Add(b.ttl).UnixNano()))
	copy(raw[expiryPrefixLen:], value)

	var evicted []string
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketEntries)
		if err := bucket.Put([]byte(key), raw); err != nil {
			return err
		}

		var err error
		evicted, err = b.trim(bucket, now)
		return err
	})
	if err != nil {
		b.logError("bolt cache Set failed", err)
		return
	}

	if b.onEvict != nil {
		for _, k := range evicted {
			b.onEvict(k)
		}
	}
}

// trim removes expired entries, then the entries closest to expiry until the
// bucket fits maxSize. Only the latter are returned as evictions.
func (b *boltCache) trim(bucket *bolt.Bucket, now time.Time) ([]string, error) {
	type entry struct {
		key    []byte
		expiry int64
	}

	var live []entry
	var expired [][]byte
	err := bucket.ForEach(func(k, v []byte) error {
		key := append([]byte(nil), k...)
		if b.expired(v, now) {
			expired = append(expired, key)
			return nil
		}
		live = append(live, entry{key: key, expiry: int64(binary.BigEndian.Uint64(v[:expiryPrefixLen]))})
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, k := range expired {
		if err := bucket.Delete(k); err != nil {
			return nil, err
		}
	}

	var evicted []string
	for len(live) > b.maxSize {
		oldest := 0
		for i := range live {
			if live[i].expiry < live[oldest].expiry {
				oldest = i
			}
		}
		if err := bucket.Delete(live[oldest].key); err != nil {
			return nil, err
		}
		evicted = append(evicted, string(live[oldest].key))
		live = append(live[:oldest], live[oldest+1:]...)
	}
	return evicted, nil
}

func (b *boltCache) Delete(key string) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Delete([]byte(key))
	})
	if err != nil {
		b.logError("bolt cache Delete failed", err)
	}
}

func (b *boltCache) Len() int {
	now := b.now()
	count := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(_, v []byte) error {
			if !b.expired(v, now) {
				count++
			}
			return nil
		})
	})
	if err != nil {
		b.logError("bolt cache Len failed", err)
		return 0
	}
	return count
}

func (b *boltCache) Close() error {
	return b.db.Close()
}
