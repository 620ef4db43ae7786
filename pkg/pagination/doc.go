// Package pagination drives a page-indexed listing source until enough
// items are collected or the source runs dry.
//
// Pages are requested strictly one after another, starting at page 0. The
// loop stops when:
//   - the target count is reached (the last page is truncated),
//   - a page comes back empty,
//   - the source-reported page count is reached,
//   - a page is shorter than the requested page size and the source
//     reports no page count, or
//   - a page is malformed and the policy is MalformedStop.
//
// Transport failures are never treated as exhaustion: they abort the fetch
// and no partial result is returned. There is no retry and no backoff.
//
// Example usage:
//
//	fetcher := pagination.NewFetcher[hh.Listing](source, pagination.DefaultConfig())
//	listings, err := fetcher.Fetch(ctx, pagination.Query{AreaID: "22", Target: 2000, PageSize: 100})
package pagination
