package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts fresh entries served from Redis.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_cache_hits_total",
		Help: "Total number of listing pages served from cache",
	})

	// CacheMisses counts lookups with no usable entry.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_cache_misses_total",
		Help: "Total number of listing page cache misses",
	})

	// StoredBytes counts bytes written to Redis.
	StoredBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_cache_stored_bytes_total",
		Help: "Total bytes written to the listing page cache",
	})

	// NotModified counts 304 responses answered from cache.
	NotModified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_cache_not_modified_total",
		Help: "Total number of 304 Not Modified responses replayed from cache",
	})

	// CacheErrors counts Redis failures by operation.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_cache_errors_total",
		Help: "Total number of cache operation errors",
	}, []string{"operation"}) // get, set, delete
)
