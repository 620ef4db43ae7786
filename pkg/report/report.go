// Package report aggregates normalized records into a salary series.
//
// Build is pure: it returns a Summary and leaves presentation to the caller.
// WriteSummary renders the console lines and Publish hands the series to a
// visualization Sink.
package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/Sternrassler/vacancy-report/pkg/vacancy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gonum.org/v1/gonum/stat"
)

// DefaultCurrency is the designated currency of the frequency-aware filter.
const DefaultCurrency = "RUR"

var (
	retainedRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vacancy_report_retained_records",
		Help: "Records contributing a midpoint to the last report",
	})

	filteredOut = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vacancy_report_filtered_out_records",
		Help: "Records excluded by the pay period/currency filter in the last report",
	})
)

// Filter restricts the series to one pay period and currency.
type Filter struct {
	PayPeriod vacancy.PayPeriod
	Currency  string
}

// DefaultFilter keeps monthly salaries in roubles.
func DefaultFilter() Filter {
	return Filter{PayPeriod: vacancy.PayPeriodMonth, Currency: DefaultCurrency}
}

// Matches reports whether r carries the filter's pay period and currency.
// Records missing either field never match.
func (f Filter) Matches(r vacancy.Record) bool {
	if r.PayPeriod == nil || r.Currency == nil {
		return false
	}
	return *r.PayPeriod == f.PayPeriod && *r.Currency == f.Currency
}

// Options controls Build. A nil Filter disables filtering, which is what
// the basic variant wants.
type Options struct {
	Filter *Filter
}

// OptionsFor returns the options matching a normalizer variant.
func OptionsFor(v vacancy.Variant, f Filter) Options {
	if v == vacancy.VariantFrequencyAware {
		return Options{Filter: &f}
	}
	return Options{}
}

// Summary is the outcome of one aggregation.
type Summary struct {
	Total             int
	DistinctEmployers int

	// Filtered is the number of records that passed the filter, or Total
	// when no filter applied.
	Filtered int

	// Retained always equals len(Midpoints).
	Retained  int
	Midpoints []float64

	// Mean and Median are zero when nothing was retained.
	Mean   float64
	Median float64
}

// Build aggregates records in input order.
func Build(records []vacancy.Record, opts Options) Summary {
	s := Summary{
		Total:             len(records),
		DistinctEmployers: distinctEmployers(records),
		Midpoints:         make([]float64, 0, len(records)),
	}

	for _, r := range records {
		if opts.Filter != nil && !opts.Filter.Matches(r) {
			continue
		}
		s.Filtered++

		if !r.HasSalaryBounds() {
			continue
		}
		s.Midpoints = append(s.Midpoints, Midpoint(*r.SalaryFrom, *r.SalaryTo))
	}
	s.Retained = len(s.Midpoints)

	if s.Retained > 0 {
		s.Mean = stat.Mean(s.Midpoints, nil)
		s.Median = median(s.Midpoints)
	}

	retainedRecords.Set(float64(s.Retained))
	filteredOut.Set(float64(s.Total - s.Filtered))
	return s
}

// Midpoint is the floating-point mean of two salary bounds.
func Midpoint(from, to int) float64 {
	return (float64(from) + float64(to)) / 2.0
}

// median averages the two middle values of an even-length series.
func median(xs []float64) float64 {
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// distinctEmployers counts unique non-empty organization names. The empty
// name is what an absent employer defaults to, so it is not an employer.
func distinctEmployers(records []vacancy.Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Organization == "" {
			continue
		}
		seen[r.Organization] = struct{}{}
	}
	return len(seen)
}

// WriteSummary prints the console lines for s. filter is nil when no
// filter was applied.
func WriteSummary(w io.Writer, s Summary, filter *Filter) error {
	lines := []string{
		fmt.Sprintf("Total vacancies: %d", s.Total),
		fmt.Sprintf("Distinct employers: %d", s.DistinctEmployers),
	}
	if filter != nil {
		lines = append(lines, fmt.Sprintf("Vacancies paid per %s in %s: %d",
			filter.PayPeriod, filter.Currency, s.Filtered))
	}
	lines = append(lines, fmt.Sprintf("Vacancies with salary range: %d", s.Retained))
	if s.Retained > 0 {
		lines = append(lines, fmt.Sprintf("Mean midpoint: %.2f", s.Mean),
			fmt.Sprintf("Median midpoint: %.2f", s.Median))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Sink renders a one-dimensional salary series.
type Sink interface {
	Render(series []float64) error
}

// Publish hands exactly s.Midpoints to sink.
func Publish(sink Sink, s Summary) error {
	if err := sink.Render(s.Midpoints); err != nil {
		return fmt.Errorf("render %d midpoints: %w", s.Retained, err)
	}
	return nil
}
