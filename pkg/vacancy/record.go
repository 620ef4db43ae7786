// Package vacancy turns raw listings into strictly typed records.
package vacancy

import "time"

// PayPeriod is the cadence a salary figure is denominated in.
type PayPeriod string

const (
	PayPeriodMonth PayPeriod = "MONTH"
	PayPeriodShift PayPeriod = "SHIFT"
	PayPeriodHour  PayPeriod = "HOUR"
	PayPeriodFly   PayPeriod = "FLY_IN_FLY_OUT"
)

// Variant selects which optional fields the normalizer tracks.
type Variant string

const (
	// VariantBasic ignores pay period and currency.
	VariantBasic Variant = "basic"

	// VariantFrequencyAware extracts pay period and currency from salary_range.
	VariantFrequencyAware Variant = "frequency"
)

// ParseVariant maps a config string to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case VariantBasic:
		return VariantBasic, true
	case VariantFrequencyAware, "frequency-aware":
		return VariantFrequencyAware, true
	default:
		return "", false
	}
}

// Record is one normalized listing. Title and PublishedAt are always set;
// Region and Organization are set or hold their policy default. Pointer
// fields are nil when the source omitted them. SalaryFrom <= SalaryTo is
// not guaranteed.
type Record struct {
	ID           string
	URL          string
	Title        string
	SalaryFrom   *int
	SalaryTo     *int
	PayPeriod    *PayPeriod
	Currency     *string
	Region       string
	Organization string
	PublishedAt  time.Time
	Experience   *string
}

// HasSalaryBounds reports whether both salary bounds are present.
func (r Record) HasSalaryBounds() bool {
	return r.SalaryFrom != nil && r.SalaryTo != nil
}
