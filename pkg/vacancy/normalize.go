package vacancy

import (
	"errors"
	"strings"
	"time"

	"github.com/Sternrassler/vacancy-report/pkg/hh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// hh publishes timestamps with a colon-less offset; RFC 3339 is accepted too.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

var (
	recordsNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_records_normalized_total",
		Help: "Total listings normalized into records",
	})

	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_validation_failures_total",
		Help: "Listings rejected by normalization, by field",
	}, []string{"field"})
)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithVariant selects the field set to extract.
func WithVariant(v Variant) Option {
	return func(n *Normalizer) {
		n.variant = v
	}
}

// SkipInvalid makes NormalizeAll drop failing listings instead of aborting.
func SkipInvalid() Option {
	return func(n *Normalizer) {
		n.skipInvalid = true
	}
}

// Normalizer maps hh listings to Records.
type Normalizer struct {
	variant     Variant
	skipInvalid bool
	logger      zerolog.Logger
}

// NewNormalizer builds a strict, frequency-aware Normalizer unless options
// say otherwise.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		variant: VariantFrequencyAware,
		logger:  log.With().Str("component", "vacancy").Logger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Variant returns the configured variant.
func (n *Normalizer) Variant() Variant {
	return n.variant
}

// Normalize converts one listing. It performs no I/O.
func (n *Normalizer) Normalize(raw hh.Listing) (Record, error) {
	rec := Record{
		ID:         raw.ID,
		URL:        raw.AlternateURL,
		SalaryFrom: raw.SalaryFrom(),
		SalaryTo:   raw.SalaryTo(),
	}

	title, ok := raw.Title()
	var err error
	if rec.Title, _, err = resolveText(FieldTitle, title, ok); err != nil {
		return Record{}, err
	}

	if rec.PublishedAt, err = parsePublished(raw); err != nil {
		return Record{}, err
	}

	region, ok := raw.AreaName()
	if rec.Region, _, err = resolveText(FieldRegion, region, ok); err != nil {
		return Record{}, err
	}

	org, ok := raw.EmployerName()
	if rec.Organization, _, err = resolveText(FieldOrganization, org, ok); err != nil {
		return Record{}, err
	}

	experience, ok := raw.ExperienceName()
	rec.Experience = nullableText(FieldExperience, experience, ok)

	if n.variant == VariantFrequencyAware {
		period, ok := raw.PayPeriodID()
		if p := nullableText(FieldPayPeriod, period, ok); p != nil {
			pp := PayPeriod(*p)
			rec.PayPeriod = &pp
		}
		currency, ok := raw.RangeCurrency()
		rec.Currency = nullableText(FieldCurrency, currency, ok)
	}

	recordsNormalized.Inc()
	return rec, nil
}

// Batch is the outcome of NormalizeAll.
type Batch struct {
	Records []Record

	// Skipped lists failures dropped under SkipInvalid.
	Skipped []*RecordError
}

// NormalizeAll converts listings in order. Without SkipInvalid the first
// failure aborts the whole batch and is returned as a *RecordError.
func (n *Normalizer) NormalizeAll(raws []hh.Listing) (Batch, error) {
	batch := Batch{Records: make([]Record, 0, len(raws))}

	for i, raw := range raws {
		rec, err := n.Normalize(raw)
		if err == nil {
			batch.Records = append(batch.Records, rec)
			continue
		}

		recErr := &RecordError{Index: i, ID: raw.ID, Err: err}
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			validationFailures.WithLabelValues(string(vErr.Field)).Inc()
		}

		if !n.skipInvalid {
			n.logger.Error().Err(err).Int("index", i).Str("id", raw.ID).Msg("Listing failed validation")
			return Batch{}, recErr
		}

		n.logger.Debug().Err(err).Int("index", i).Str("id", raw.ID).Msg("Skipping invalid listing")
		batch.Skipped = append(batch.Skipped, recErr)
	}

	return batch, nil
}

func parsePublished(raw hh.Listing) (time.Time, error) {
	text, ok := raw.Published()
	if _, _, err := resolveText(FieldPublishedAt, text, ok); err != nil {
		return time.Time{}, err
	}

	text = strings.TrimSpace(text)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &ValidationError{Field: FieldPublishedAt, Reason: "unparseable", Value: text}
}
