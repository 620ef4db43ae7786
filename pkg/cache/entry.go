package cache

import (
	"net/http"
	"time"
)

// Entry is one cached API response.
type Entry struct {
	Body         []byte      `json:"body"`
	ETag         string      `json:"etag"`
	Expires      time.Time   `json:"expires"`
	LastModified time.Time   `json:"last_modified"`
	StatusCode   int         `json:"status_code"`
	Header       http.Header `json:"header"`
	StoredAt     time.Time   `json:"stored_at"`
}

// IsFresh reports whether the entry can be served without contacting the API.
func (e *Entry) IsFresh() bool {
	return e != nil && time.Now().Before(e.Expires)
}

// TTL returns the time until expiration, or 0 once expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// CanRevalidate reports whether a conditional request can be built from the entry.
func (e *Entry) CanRevalidate() bool {
	if e == nil {
		return false
	}
	return e.ETag != "" || !e.LastModified.IsZero()
}
