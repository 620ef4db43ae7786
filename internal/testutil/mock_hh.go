// Package testutil provides a mock vacancy listing API for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// MockHH is a paginated GET /vacancies server backed by an in-memory list.
type MockHH struct {
	server *httptest.Server

	mu       sync.RWMutex
	listings []any
	failures map[int]int  // page -> status code
	broken   map[int]bool // page -> body without items

	// OmitPages drops the "pages" field from responses.
	OmitPages bool

	// Tracking
	RequestCount      int
	Pages             []int
	LastQuery         map[string]string
	LastRequestHeader http.Header
}

// NewMockHH starts a mock server serving listings.
func NewMockHH(listings []any) *MockHH {
	m := &MockHH{
		listings: listings,
		failures: map[int]int{},
		broken:   map[int]bool{},
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the mock server URL.
func (m *MockHH) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockHH) Close() {
	m.server.Close()
}

// FailPage makes page respond with status.
func (m *MockHH) FailPage(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[page] = status
}

// BreakPage makes page respond 200 without an items field.
func (m *MockHH) BreakPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broken[page] = true
}

// GetRequestCount returns the number of requests served.
func (m *MockHH) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

func (m *MockHH) handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage <= 0 {
		perPage = 20
	}

	m.mu.Lock()
	m.RequestCount++
	m.Pages = append(m.Pages, page)
	m.LastRequestHeader = r.Header.Clone()
	m.LastQuery = map[string]string{
		"area":     q.Get("area"),
		"page":     q.Get("page"),
		"per_page": q.Get("per_page"),
	}
	status, failing := m.failures[page]
	broken := m.broken[page]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.URL.Path != "/vacancies" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"type":"not_found"}]}`))
		return
	}
	if failing {
		w.WriteHeader(status)
		w.Write([]byte(`{"errors":[{"type":"mock_failure"}]}`))
		return
	}
	if broken {
		w.Write([]byte(`{"found":0,"description":"captcha_required"}`))
		return
	}

	m.mu.RLock()
	total := len(m.listings)
	from := min(page*perPage, total)
	to := min(from+perPage, total)
	body := map[string]any{
		"items":    m.listings[from:to],
		"found":    total,
		"page":     page,
		"per_page": perPage,
	}
	if !m.OmitPages {
		body["pages"] = (total + perPage - 1) / perPage
	}
	m.mu.RUnlock()

	json.NewEncoder(w).Encode(body)
}

// Listing builds a raw listing in the API's shape. Empty strings and nil
// salary bounds are emitted as JSON null; a nil nested block is omitted.
func Listing(name, employer, area, publishedAt string, from, to *int, currency, mode string) map[string]any {
	l := map[string]any{
		"id":           strconv.Itoa(len(name) + len(employer)),
		"name":         nullable(name),
		"published_at": nullable(publishedAt),
		"experience":   map[string]any{"id": "between1And3", "name": "1–3 years"},
	}
	if employer != "" {
		l["employer"] = map[string]any{"id": "1", "name": employer}
	}
	if area != "" {
		l["area"] = map[string]any{"id": "22", "name": area}
	}
	if from != nil || to != nil {
		l["salary"] = map[string]any{"from": from, "to": to, "currency": nullable(currency), "gross": true}
	}
	if currency != "" || mode != "" {
		sr := map[string]any{"from": from, "to": to, "currency": nullable(currency), "gross": true}
		if mode != "" {
			sr["mode"] = map[string]any{"id": mode, "name": mode}
		}
		l["salary_range"] = sr
	}
	return l
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
