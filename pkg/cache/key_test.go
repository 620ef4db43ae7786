package cache

import (
	"net/url"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "endpoint only",
			key:  Key{Endpoint: "/vacancies"},
			want: "vacancies:vacancies",
		},
		{
			name: "query params sorted",
			key: Key{
				Endpoint: "/vacancies/",
				Query: url.Values{
					"page":     {"3"},
					"area":     {"22"},
					"per_page": {"100"},
				},
			},
			want: "vacancies:vacancies:area=22:page=3:per_page=100",
		},
		{
			name: "multi-valued param",
			key: Key{
				Endpoint: "/vacancies",
				Query:    url.Values{"area": {"1", "2"}},
			},
			want: "vacancies:vacancies:area=1,2",
		},
		{
			name: "empty endpoint",
			key:  Key{Query: url.Values{"page": {"0"}}},
			want: "vacancies:page=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyFor_Deterministic(t *testing.T) {
	a, _ := url.Parse("https://api.hh.ru/vacancies?page=0&area=22&per_page=100")
	b, _ := url.Parse("https://api.hh.ru/vacancies?per_page=100&area=22&page=0")

	if KeyFor(a).String() != KeyFor(b).String() {
		t.Errorf("keys differ: %q vs %q", KeyFor(a), KeyFor(b))
	}
}
