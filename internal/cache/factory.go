package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Belphemur/TVShows/internal/config"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries.
	Size int

	// TTL is the lifetime of an entry after its last Set.
	TTL time.Duration

	// OnEvict is called with the key of each entry the backend removes.
	OnEvict EvictCallback

	// Logger receives backend errors. If nil, errors are dropped.
	Logger Logger

	// KeyPrefix namespaces keys in shared backends (redis).
	KeyPrefix string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Path is the database file of the bolt provider.
	Path string

	// Group labels the Prometheus metrics of this instance. When empty the
	// cache is not instrumented.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Cache with the named provider. A non-empty cfg.Group wraps it
// with metric instrumentation.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("cache: size must be positive, got %d", cfg.Size)
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache: ttl must be positive, got %s", cfg.TTL)
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	userEvict := cfg.OnEvict
	cfg.OnEvict = func(key string) {
		evictionsTotal.WithLabelValues(group).Inc()
		if userEvict != nil {
			userEvict(key)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSnapshotCache builds the snapshot cache described by the application config.
func NewSnapshotCache(cfg *config.Config) (Cache, error) {
	ttl, err := time.ParseDuration(cfg.Snapshot.TTL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid snapshot ttl %q: %w", cfg.Snapshot.TTL, err)
	}

	provider := cfg.Snapshot.Provider
	if provider == "" {
		provider = "memory"
	}

	logger := config.GetLogger()
	logger.Info().Str("provider", provider).Int("size", cfg.Snapshot.Size).Dur("ttl", ttl).Msg("Creating snapshot cache")

	return New(provider, ProviderConfig{
		Size:          cfg.Snapshot.Size,
		TTL:           ttl,
		Logger:        zerologAdapter{},
		KeyPrefix:     "tvshows:snapshot:",
		RedisAddress:  cfg.Snapshot.RedisAddress,
		RedisPassword: cfg.Snapshot.RedisPassword,
		RedisDB:       cfg.Snapshot.RedisDB,
		Path:          cfg.Snapshot.Path,
		Group:         "snapshots",
	})
}

// zerologAdapter forwards backend errors to the application logger.
type zerologAdapter struct{}

func (zerologAdapter) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}
