package pagination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is used when a query does not set one.
const DefaultPageSize = 100

// ErrMalformedPage marks a response without the expected listings field.
// Sources wrap it; the fetcher consults MalformedPolicy.
var ErrMalformedPage = errors.New("malformed page")

var (
	pagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_pages_fetched_total",
		Help: "Total listing pages requested",
	})

	listingsFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_listings_fetched_total",
		Help: "Total listings accumulated across pages",
	})

	fetchStops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_fetch_stops_total",
		Help: "Pagination terminations by reason",
	}, []string{"reason"})
)

// MalformedPolicy decides what a malformed page does to a fetch.
type MalformedPolicy int

const (
	// MalformedStop ends pagination as if the source were exhausted.
	MalformedStop MalformedPolicy = iota

	// MalformedFail aborts the fetch with the error.
	MalformedFail
)

func (p MalformedPolicy) String() string {
	if p == MalformedFail {
		return "fail"
	}
	return "stop"
}

// StopReason records why pagination ended.
type StopReason string

const (
	StopTarget    StopReason = "target"
	StopEmptyPage StopReason = "empty_page"
	StopShortPage StopReason = "short_page"
	StopLastPage  StopReason = "last_page"
	StopMalformed StopReason = "malformed"
)

// PageRequest is one page request sent to a source.
type PageRequest struct {
	AreaID  string
	PerPage int
	Page    int
}

// Page is one page of results. Pages is the source-reported page count,
// 0 when unknown.
type Page[T any] struct {
	Items []T
	Pages int
}

// PageSource fetches single pages.
type PageSource[T any] interface {
	FetchPage(ctx context.Context, req PageRequest) (Page[T], error)
}

// Query describes one fetch.
type Query struct {
	// AreaID is the region filter understood by the source.
	AreaID string

	// Target is the maximum number of items wanted.
	Target int

	// PageSize bounds items per request (default: DefaultPageSize).
	PageSize int
}

// Config holds fetcher configuration.
type Config struct {
	OnMalformed MalformedPolicy
}

// DefaultConfig returns the lenient configuration.
func DefaultConfig() Config {
	return Config{OnMalformed: MalformedStop}
}

// Result is the outcome of a fetch.
type Result[T any] struct {
	Items    []T
	Requests int
	Reason   StopReason
}

// Fetcher walks a PageSource.
type Fetcher[T any] struct {
	source PageSource[T]
	config Config
	logger zerolog.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher[T any](source PageSource[T], config Config) *Fetcher[T] {
	return &Fetcher[T]{
		source: source,
		config: config,
		logger: log.With().Str("component", "pagination").Logger(),
	}
}

// Fetch returns at most q.Target items in source order.
func (f *Fetcher[T]) Fetch(ctx context.Context, q Query) ([]T, error) {
	res, err := f.Run(ctx, q)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Run is Fetch with request accounting.
func (f *Fetcher[T]) Run(ctx context.Context, q Query) (Result[T], error) {
	start := time.Now()

	perPage := q.PageSize
	if perPage <= 0 {
		perPage = DefaultPageSize
	}

	res := Result[T]{Reason: StopTarget}
	if q.Target <= 0 {
		return res, nil
	}

	items := make([]T, 0, min(q.Target, 10*perPage))

	for page := 0; ; page++ {
		req := PageRequest{AreaID: q.AreaID, PerPage: perPage, Page: page}

		p, err := f.source.FetchPage(ctx, req)
		res.Requests++
		pagesFetched.Inc()

		if err != nil {
			if errors.Is(err, ErrMalformedPage) && f.config.OnMalformed == MalformedStop {
				f.logger.Warn().
					Err(err).
					Int("page", page).
					Int("accumulated", len(items)).
					Msg("Malformed page treated as end of listings")
				res.Reason = StopMalformed
				break
			}
			return Result[T]{}, fmt.Errorf("fetch page %d: %w", page, err)
		}

		f.logger.Debug().
			Str("area", q.AreaID).
			Int("page", page).
			Int("per_page", perPage).
			Int("items", len(p.Items)).
			Msg("Page fetched")

		if len(p.Items) == 0 {
			res.Reason = StopEmptyPage
			break
		}

		items = append(items, p.Items...)
		listingsFetched.Add(float64(len(p.Items)))

		if len(items) >= q.Target {
			res.Reason = StopTarget
			break
		}
		if p.Pages > 0 && page+1 >= p.Pages {
			res.Reason = StopLastPage
			break
		}
		// A reported page count wins: the source may cap PerPage below
		// what was asked for.
		if p.Pages == 0 && len(p.Items) < perPage {
			res.Reason = StopShortPage
			break
		}
	}

	if len(items) > q.Target {
		items = items[:q.Target]
	}
	res.Items = items
	fetchStops.WithLabelValues(string(res.Reason)).Inc()

	f.logger.Info().
		Str("area", q.AreaID).
		Int("items", len(items)).
		Int("requests", res.Requests).
		Str("reason", string(res.Reason)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return res, nil
}
