package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Belphemur/TVShows/internal/config"
)

func TestFactory_New_Memory(t *testing.T) {
	c, err := New("memory", ProviderConfig{Size: 100, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	defer c.Close()

	c.Set("test", []byte("data"))
	val, ok := c.Get("test")
	if !ok || string(val) != "data" {
		t.Fatal("Memory cache should work after creation via factory")
	}
}

func TestFactory_New_UnknownProvider(t *testing.T) {
	_, err := New("nonexistent", ProviderConfig{Size: 1, TTL: time.Second})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
}

func TestFactory_New_RejectsInvalidBounds(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
	}{
		{"zero size", ProviderConfig{Size: 0, TTL: time.Hour}},
		{"negative size", ProviderConfig{Size: -1, TTL: time.Hour}},
		{"zero ttl", ProviderConfig{Size: 10, TTL: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("memory", tt.cfg); err == nil {
				t.Fatal("Expected error for invalid bounds")
			}
		})
	}
}

func TestFactory_RegisteredProviders(t *testing.T) {
	names := RegisteredProviders()

	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"bolt", "memory", "redis"} {
		if !found[want] {
			t.Errorf("Expected %q provider to be registered, got %v", want, names)
		}
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Providers not sorted: %v", names)
			break
		}
	}
}

func TestFactory_Register_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestFactory_New_Redis_InvalidAddress(t *testing.T) {
	_, err := New("redis", ProviderConfig{
		Size:         100,
		TTL:          time.Hour,
		RedisAddress: "localhost:59999",
	})
	if err == nil {
		t.Fatal("Expected error when connecting to invalid Redis address")
	}
}

func TestNewSnapshotCache(t *testing.T) {
	cfg := &config.Config{}
	cfg.Snapshot.Provider = "bolt"
	cfg.Snapshot.Size = 5
	cfg.Snapshot.TTL = "10m"
	cfg.Snapshot.Path = filepath.Join(t.TempDir(), "snapshots.db")

	c, err := NewSnapshotCache(cfg)
	if err != nil {
		t.Fatalf("NewSnapshotCache: %v", err)
	}
	defer c.Close()

	c.Set("1", []byte("page"))
	if val, ok := c.Get("1"); !ok || string(val) != "page" {
		t.Fatalf("Expected stored page, got %q (ok=%v)", val, ok)
	}
}

func TestNewSnapshotCache_InvalidTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Snapshot.Provider = "memory"
	cfg.Snapshot.Size = 5
	cfg.Snapshot.TTL = "soon"

	if _, err := NewSnapshotCache(cfg); err == nil {
		t.Fatal("Expected error for unparsable ttl")
	}
}
