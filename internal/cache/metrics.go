package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache metrics carry a "cache" label equal to ProviderConfig.Group.
var (
	lookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_cache_lookups_total",
			Help: "Total number of cache lookups by result (hit or miss).",
		},
		[]string{"cache", "result"},
	)

	evictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_cache_evictions_total",
			Help: "Total number of entries removed by the cache backend.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(lookupsTotal, evictionsTotal)
}

var (
	entriesMu    sync.Mutex
	entriesGauge = make(map[string]prometheus.GaugeFunc)
	// entriesReg is swapped by tests for an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntries exposes the live entry count of a group, read at scrape time.
// A previous gauge for the same group is replaced.
func registerEntries(group string, length func() int) {
	gauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "snapshot_cache_entries",
			Help:        "Current number of live entries in the cache.",
			ConstLabels: prometheus.Labels{"cache": group},
		},
		func() float64 { return float64(length()) },
	)

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entriesGauge[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesGauge[group] = gauge
	_ = entriesReg.Register(gauge)
}

func unregisterEntries(group string) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if g, ok := entriesGauge[group]; ok {
		entriesReg.Unregister(g)
		delete(entriesGauge, group)
	}
}
