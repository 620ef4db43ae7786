// Package cache provides an optional Redis-backed response cache for
// vacancy listing pages.
//
// A report run does not need it: with no cache configured every page is
// fetched from the API and nothing outlives the process. When a Redis URL is
// configured, repeated runs against the same area reuse pages until they
// expire:
//
//   - Entries live until the response Expires header, or DefaultTTL
//   - Stale entries carrying an ETag or Last-Modified are revalidated with
//     If-None-Match / If-Modified-Since; a 304 replays the stored body
//   - Keys are deterministic over endpoint and sorted query parameters
//
// # Usage
//
//	store := cache.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:6379"}))
//
//	key := cache.Key{
//		Endpoint: "/vacancies",
//		Query:    url.Values{"area": {"22"}, "page": {"0"}, "per_page": {"100"}},
//	}
//
//	entry, err := store.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the API, then:
//		entry, _ = cache.Capture(resp)
//		_ = store.Set(ctx, key, entry)
//	}
//
// # Metrics
//
//   - vacancy_cache_hits_total
//   - vacancy_cache_misses_total
//   - vacancy_cache_stored_bytes_total
//   - vacancy_cache_not_modified_total
//   - vacancy_cache_errors_total{operation}
package cache
