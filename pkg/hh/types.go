package hh

import "encoding/json"

// Listing is one vacancy as returned by GET /vacancies. Every nested
// structure may be absent or null, so each is a pointer; use the accessor
// methods, which are nil-safe at every level.
type Listing struct {
	ID           string       `json:"id"`
	Name         *string      `json:"name"`
	Salary       *Salary      `json:"salary"`
	SalaryRange  *SalaryRange `json:"salary_range"`
	Area         *Ref         `json:"area"`
	Employer     *Employer    `json:"employer"`
	Experience   *Ref         `json:"experience"`
	PublishedAt  *string      `json:"published_at"`
	AlternateURL string       `json:"alternate_url"`
}

// Salary is the legacy salary block.
type Salary struct {
	From     *int    `json:"from"`
	To       *int    `json:"to"`
	Currency *string `json:"currency"`
	Gross    *bool   `json:"gross"`
}

// SalaryRange is the salary block that also carries the pay period.
type SalaryRange struct {
	From      *int    `json:"from"`
	To        *int    `json:"to"`
	Currency  *string `json:"currency"`
	Gross     *bool   `json:"gross"`
	Mode      *Ref    `json:"mode"`
	Frequency *Ref    `json:"frequency"`
}

// Ref is hh's common {id, name} dictionary reference.
type Ref struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// Employer is the subset of the employer block used here.
type Employer struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

// searchResponse is the envelope of GET /vacancies. Items stays nil when the
// field is missing or null, which marks the page as malformed. Listings are
// kept raw so that one bad listing is not mistaken for a bad page.
type searchResponse struct {
	Items   *[]json.RawMessage `json:"items"`
	Found   int        `json:"found"`
	Pages   int        `json:"pages"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
}

// Title returns the display name.
func (l Listing) Title() (string, bool) { return deref(l.Name) }

// Published returns the raw publish timestamp text.
func (l Listing) Published() (string, bool) { return deref(l.PublishedAt) }

// SalaryFrom returns salary.from.
func (l Listing) SalaryFrom() *int {
	if l.Salary == nil {
		return nil
	}
	return l.Salary.From
}

// SalaryTo returns salary.to.
func (l Listing) SalaryTo() *int {
	if l.Salary == nil {
		return nil
	}
	return l.Salary.To
}

// PayPeriodID returns salary_range.mode.id.
func (l Listing) PayPeriodID() (string, bool) {
	if l.SalaryRange == nil {
		return "", false
	}
	return l.SalaryRange.Mode.id()
}

// RangeCurrency returns salary_range.currency.
func (l Listing) RangeCurrency() (string, bool) {
	if l.SalaryRange == nil {
		return "", false
	}
	return deref(l.SalaryRange.Currency)
}

// AreaName returns area.name.
func (l Listing) AreaName() (string, bool) { return l.Area.name() }

// EmployerName returns employer.name.
func (l Listing) EmployerName() (string, bool) {
	if l.Employer == nil {
		return "", false
	}
	return deref(l.Employer.Name)
}

// ExperienceName returns experience.name.
func (l Listing) ExperienceName() (string, bool) { return l.Experience.name() }

func (r *Ref) id() (string, bool) {
	if r == nil {
		return "", false
	}
	return deref(r.ID)
}

func (r *Ref) name() (string, bool) {
	if r == nil {
		return "", false
	}
	return deref(r.Name)
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
