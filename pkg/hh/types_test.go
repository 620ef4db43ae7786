package hh

import (
	"encoding/json"
	"testing"
)

func decodeListing(t *testing.T, raw string) Listing {
	t.Helper()
	var l Listing
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return l
}

func TestListing_AccessorsFull(t *testing.T) {
	l := decodeListing(t, `{
		"id": "101",
		"name": "Go developer",
		"salary": {"from": 150000, "to": 250000, "currency": "RUR", "gross": false},
		"salary_range": {"from": 150000, "to": 250000, "currency": "RUR", "mode": {"id": "MONTH", "name": "per month"}},
		"area": {"id": "22", "name": "Vladivostok"},
		"employer": {"id": "7", "name": "Acme"},
		"experience": {"id": "between3And6", "name": "3–6 years"},
		"published_at": "2024-05-01T10:00:00+0300"
	}`)

	if v, ok := l.Title(); !ok || v != "Go developer" {
		t.Errorf("Title() = %q, %v", v, ok)
	}
	if from, to := l.SalaryFrom(), l.SalaryTo(); from == nil || to == nil || *from != 150000 || *to != 250000 {
		t.Errorf("salary = %v, %v", from, to)
	}
	if v, ok := l.PayPeriodID(); !ok || v != "MONTH" {
		t.Errorf("PayPeriodID() = %q, %v", v, ok)
	}
	if v, ok := l.RangeCurrency(); !ok || v != "RUR" {
		t.Errorf("RangeCurrency() = %q, %v", v, ok)
	}
	if v, ok := l.AreaName(); !ok || v != "Vladivostok" {
		t.Errorf("AreaName() = %q, %v", v, ok)
	}
	if v, ok := l.EmployerName(); !ok || v != "Acme" {
		t.Errorf("EmployerName() = %q, %v", v, ok)
	}
	if v, ok := l.ExperienceName(); !ok || v != "3–6 years" {
		t.Errorf("ExperienceName() = %q, %v", v, ok)
	}
}

func TestListing_AccessorsAbsentAtEveryLevel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"fields missing", `{"id": "1"}`},
		{"fields null", `{"id": "1", "name": null, "salary": null, "salary_range": null, "area": null, "employer": null, "experience": null, "published_at": null}`},
		{"nested fields null", `{"id": "1", "salary": {"from": null, "to": null}, "salary_range": {"mode": null, "currency": null}, "area": {"name": null}, "employer": {}, "experience": {"id": null}}`},
		{"mode without id", `{"id": "1", "salary_range": {"mode": {"name": "per month"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := decodeListing(t, tt.raw)

			if l.SalaryFrom() != nil || l.SalaryTo() != nil {
				t.Error("salary bounds should be nil")
			}
			if _, ok := l.PayPeriodID(); ok {
				t.Error("PayPeriodID should be absent")
			}
			if _, ok := l.RangeCurrency(); ok {
				t.Error("RangeCurrency should be absent")
			}
			if _, ok := l.AreaName(); ok {
				t.Error("AreaName should be absent")
			}
			if _, ok := l.EmployerName(); ok {
				t.Error("EmployerName should be absent")
			}
			if _, ok := l.ExperienceName(); ok {
				t.Error("ExperienceName should be absent")
			}
			if _, ok := l.Title(); ok {
				t.Error("Title should be absent")
			}
		})
	}
}
