package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "tvshows:cache:"

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores each entry as a plain string key with a PX expiry and keeps
// a sorted-set index (score = write time in ms) to bound the number of entries.
//
// The script touches keys derived from the prefix that are not declared in
// KEYS, so it targets standalone Redis/Valkey, not Cluster.
type redisCache struct {
	client   *redis.Client
	ttl      time.Duration
	maxSize  int
	onEvict  EvictCallback
	logger   Logger
	prefix   string
	indexKey string
}

// storeAndTrim writes one entry, refreshes its index score and drops the
// oldest entries above the size bound.
//
// KEYS[1] = entry key, KEYS[2] = index sorted set
// ARGV[1] = value, ARGV[2] = ttl ms, ARGV[3] = now ms, ARGV[4] = member,
// ARGV[5] = max size, ARGV[6] = key prefix
//
// Returns the evicted members.
var storeAndTrim = redis.NewScript(`
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])

local evicted = {}
local over = redis.call('ZCARD', KEYS[2]) - tonumber(ARGV[5])
if over > 0 then
    local oldest = redis.call('ZPOPMIN', KEYS[2], over)
    for i = 1, #oldest, 2 do
        redis.call('DEL', ARGV[6] .. oldest[i])
        table.insert(evicted, oldest[i])
    end
end
return evicted
`)

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &redisCache{
		client:   client,
		ttl:      cfg.TTL,
		maxSize:  cfg.Size,
		onEvict:  cfg.OnEvict,
		logger:   cfg.Logger,
		prefix:   prefix,
		indexKey: prefix + "_index",
	}, nil
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	evicted, err := storeAndTrim.Run(ctx, r.client,
		[]string{r.prefix + key, r.indexKey},
		value,
		strconv.FormatInt(r.ttl.Milliseconds(), 10),
		strconv.FormatInt(time.Now().UnixMilli(), 10),
		key,
		strconv.Itoa(r.maxSize),
		r.prefix,
	).StringSlice()
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}

	if r.onEvict != nil {
		for _, k := range evicted {
			r.onEvict(k)
		}
	}
}

func (r *redisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.prefix+key)
		pipe.ZRem(ctx, r.indexKey, key)
		return nil
	})
	if err != nil {
		r.logError("redis cache Delete failed", err)
	}
}

// Len drops index members whose entry has expired, then counts the rest.
func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-r.ttl).UnixMilli()
	var card *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, r.indexKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
		card = pipe.ZCard(ctx, r.indexKey)
		return nil
	})
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(card.Val())
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
