package cache

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCapture(t *testing.T) {
	tests := []struct {
		name    string
		resp    *http.Response
		wantErr bool
	}{
		{
			name: "all caching headers",
			resp: &http.Response{
				StatusCode: 200,
				Header: http.Header{
					"Expires":       []string{time.Now().Add(time.Hour).Format(http.TimeFormat)},
					"Last-Modified": []string{time.Now().Add(-time.Hour).Format(http.TimeFormat)},
					"Etag":          []string{`"abc123"`},
				},
				Body: io.NopCloser(bytes.NewReader([]byte(`{"items":[]}`))),
			},
		},
		{
			name: "no caching headers",
			resp: &http.Response{
				StatusCode: 200,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       io.NopCloser(bytes.NewReader([]byte(`{"items":[]}`))),
			},
		},
		{
			name:    "nil response",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Capture(tt.resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Capture() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			body, _ := io.ReadAll(tt.resp.Body)
			if !bytes.Equal(body, entry.Body) {
				t.Errorf("restored body = %q, entry body = %q", body, entry.Body)
			}
			if entry.ETag != tt.resp.Header.Get("ETag") {
				t.Errorf("ETag = %q, want %q", entry.ETag, tt.resp.Header.Get("ETag"))
			}
			if !entry.IsFresh() {
				t.Error("captured entry should be fresh")
			}
		})
	}
}

func TestExpiresFrom(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		header       http.Header
		expectFuture bool
	}{
		{"valid expires", http.Header{"Expires": {now.Add(time.Hour).Format(http.TimeFormat)}}, true},
		{"missing expires", http.Header{}, true},
		{"invalid expires", http.Header{"Expires": {"not a date"}}, true},
		{"expires in the past", http.Header{"Expires": {now.Add(-time.Hour).Format(http.TimeFormat)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpiresFrom(tt.header)
			if tt.expectFuture && !got.After(now) {
				t.Errorf("ExpiresFrom() = %v, expected a future time", got)
			}
			if !tt.expectFuture && got.After(now.Add(2*time.Second)) {
				t.Errorf("ExpiresFrom() = %v, expected about now", got)
			}
		})
	}
}

func TestReplay(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vacancies?page=0", nil)
	entry := &Entry{
		Body:       []byte(`{"items":[{"name":"Go developer"}]}`),
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": {"application/json"}},
	}

	resp := Replay(entry, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.Request != req {
		t.Error("Request not attached")
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(entry.Body) {
		t.Errorf("body = %q, want %q", body, entry.Body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Error("headers not replayed")
	}
}

func TestAddConditionalHeaders(t *testing.T) {
	lastMod := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		entry            *Entry
		wantNoneMatch    string
		wantModifiedSinc string
	}{
		{"etag preferred", &Entry{ETag: `"v1"`, LastModified: lastMod}, `"v1"`, ""},
		{"last modified only", &Entry{LastModified: lastMod}, "", lastMod.Format(http.TimeFormat)},
		{"no validators", &Entry{}, "", ""},
		{"nil entry", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/vacancies", nil)
			AddConditionalHeaders(req, tt.entry)

			if got := req.Header.Get("If-None-Match"); got != tt.wantNoneMatch {
				t.Errorf("If-None-Match = %q, want %q", got, tt.wantNoneMatch)
			}
			if got := req.Header.Get("If-Modified-Since"); got != tt.wantModifiedSinc {
				t.Errorf("If-Modified-Since = %q, want %q", got, tt.wantModifiedSinc)
			}
		})
	}
}
