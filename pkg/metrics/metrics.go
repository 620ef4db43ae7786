// Package metrics exposes the Prometheus registry used by the vacancy report
// pipeline. All metrics are defined in their respective packages (client,
// cache, pagination, vacancy, report) to keep them next to the code that
// updates them.
//
// A report run is a short-lived process with no scrape endpoint, so
// WriteTextfile dumps the registry for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the registerer all pipeline metrics go to via promauto.
var Registry = prometheus.DefaultRegisterer

// Gatherer reads back what Registry holds.
var Gatherer prometheus.Gatherer = prometheus.DefaultGatherer

var runStart = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
	Name: "vacancy_run_start_timestamp_seconds",
	Help: "Start time of the report run, labelled with its run id",
}, []string{"run_id"})

// RecordRun stamps the run id and start time into the exported metrics so a
// textfile dump can be matched to its log lines.
func RecordRun(runID string, started time.Time) {
	runStart.WithLabelValues(runID).Set(float64(started.Unix()))
}

// WriteTextfile writes the metrics of g, or Gatherer when g is nil, to path
// in the Prometheus text format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = Gatherer
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

// Metrics Documentation
//
// Run Metrics (pkg/metrics):
//   - vacancy_run_start_timestamp_seconds{run_id} (Gauge): Start time of the run
//
// Request Metrics (pkg/client):
//   - vacancy_api_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - vacancy_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - vacancy_api_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Cache Metrics (pkg/cache):
//   - vacancy_cache_hits_total (Counter): Pages served from Redis
//   - vacancy_cache_misses_total (Counter): Pages not found in Redis
//   - vacancy_cache_stored_bytes_total (Counter): Bytes written to Redis
//   - vacancy_cache_not_modified_total (Counter): 304 responses revalidating a cached page
//   - vacancy_cache_errors_total{operation} (Counter): Cache operation errors
//
// Pagination Metrics (pkg/pagination):
//   - vacancy_pages_fetched_total (Counter): Page requests issued
//   - vacancy_listings_fetched_total (Counter): Listings accumulated
//   - vacancy_fetch_stops_total{reason} (Counter): Fetch terminations by reason
//     (target, empty_page, short_page, last_page, malformed)
//
// Normalization Metrics (pkg/vacancy):
//   - vacancy_records_normalized_total (Counter): Listings turned into records
//   - vacancy_validation_failures_total{field} (Counter): Rejected listings by field
//
// Report Metrics (pkg/report):
//   - vacancy_report_retained_records (Gauge): Midpoints in the last report
//   - vacancy_report_filtered_out_records (Gauge): Records dropped by the pay period/currency filter
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(vacancy_cache_hits_total) /
//   (sum(vacancy_cache_hits_total) + sum(vacancy_cache_misses_total))
//
//   # Share of records usable for the histogram
//   vacancy_report_retained_records / vacancy_records_normalized_total
//
//   # Runs that stopped on a malformed page
//   vacancy_fetch_stops_total{reason="malformed"}
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(vacancy_api_request_duration_seconds_bucket[1h]))
