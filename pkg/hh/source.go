// Package hh reads vacancy listings from the hh.ru public API.
package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Sternrassler/vacancy-report/pkg/pagination"
)

// VacanciesEndpoint is the listing search path.
const VacanciesEndpoint = "/vacancies"

// MaxPerPage is the largest per_page the API honours.
const MaxPerPage = 100

// Getter is the subset of client.Client used by Source.
type Getter interface {
	Get(ctx context.Context, endpoint string, query url.Values) (*http.Response, error)
}

// Source serves listing pages; it implements pagination.PageSource[Listing].
type Source struct {
	client Getter
}

// NewSource creates a Source on top of an HTTP getter.
func NewSource(client Getter) (*Source, error) {
	if client == nil {
		return nil, fmt.Errorf("hh source: client is required")
	}
	return &Source{client: client}, nil
}

// FetchPage requests one page. An envelope that does not decode, or that
// lacks the items field, yields an error wrapping pagination.ErrMalformedPage.
// A single listing that does not decode yields a *ListingError instead, which
// the fetcher never treats as exhaustion. Transport errors from the client
// are returned unchanged.
func (s *Source) FetchPage(ctx context.Context, req pagination.PageRequest) (pagination.Page[Listing], error) {
	query := url.Values{}
	if req.AreaID != "" {
		query.Set("area", req.AreaID)
	}
	query.Set("per_page", strconv.Itoa(req.PerPage))
	query.Set("page", strconv.Itoa(req.Page))

	resp, err := s.client.Get(ctx, VacanciesEndpoint, query)
	if err != nil {
		return pagination.Page[Listing]{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return pagination.Page[Listing]{}, fmt.Errorf("hh: decode page %d: %w: %v", req.Page, pagination.ErrMalformedPage, err)
	}
	if payload.Items == nil {
		return pagination.Page[Listing]{}, fmt.Errorf("hh: page %d has no items field: %w", req.Page, pagination.ErrMalformedPage)
	}

	items := make([]Listing, 0, len(*payload.Items))
	for i, raw := range *payload.Items {
		var l Listing
		if err := json.Unmarshal(raw, &l); err != nil {
			return pagination.Page[Listing]{}, &ListingError{Page: req.Page, Index: i, Err: err}
		}
		items = append(items, l)
	}

	return pagination.Page[Listing]{
		Items: items,
		Pages: payload.Pages,
	}, nil
}

var _ pagination.PageSource[Listing] = (*Source)(nil)
