package cache

import (
	"net/url"
	"sort"
	"strings"
)

// Namespace prefixes every key written by this package.
const Namespace = "vacancies"

// Key identifies a cached API response.
type Key struct {
	// Endpoint is the API path, e.g. "/vacancies".
	Endpoint string

	// Query holds the request parameters (area, per_page, page).
	Query url.Values
}

// KeyFor builds a Key from a request URL.
func KeyFor(u *url.URL) Key {
	return Key{Endpoint: u.Path, Query: u.Query()}
}

// String renders the key deterministically:
//
//	vacancies:vacancies:area=22:page=0:per_page=100
//
// Multi-valued parameters keep their request order.
func (k Key) String() string {
	parts := []string{Namespace}

	if endpoint := strings.Trim(k.Endpoint, "/"); endpoint != "" {
		parts = append(parts, endpoint)
	}

	names := make([]string, 0, len(k.Query))
	for name := range k.Query {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parts = append(parts, name+"="+strings.Join(k.Query[name], ","))
	}

	return strings.Join(parts, ":")
}
