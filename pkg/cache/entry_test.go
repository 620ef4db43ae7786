package cache

import (
	"testing"
	"time"
)

func TestEntry_IsFresh(t *testing.T) {
	tests := []struct {
		name    string
		expires time.Time
		want    bool
	}{
		{"expired entry", time.Now().Add(-1 * time.Hour), false},
		{"valid entry", time.Now().Add(1 * time.Hour), true},
		{"just expired", time.Now().Add(-1 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry{Expires: tt.expires}
			if got := entry.IsFresh(); got != tt.want {
				t.Errorf("IsFresh() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilEntry *Entry
	if nilEntry.IsFresh() {
		t.Error("nil entry should not be fresh")
	}
}

func TestEntry_TTL(t *testing.T) {
	entry := &Entry{Expires: time.Now().Add(-time.Minute)}
	if ttl := entry.TTL(); ttl != 0 {
		t.Errorf("TTL() = %v, want 0 for expired entry", ttl)
	}

	entry.Expires = time.Now().Add(10 * time.Minute)
	if ttl := entry.TTL(); ttl <= 9*time.Minute || ttl > 10*time.Minute {
		t.Errorf("TTL() = %v, want about 10m", ttl)
	}
}

func TestEntry_CanRevalidate(t *testing.T) {
	tests := []struct {
		name  string
		entry *Entry
		want  bool
	}{
		{"nil entry", nil, false},
		{"no validators", &Entry{}, false},
		{"etag", &Entry{ETag: `"abc"`}, true},
		{"last modified", &Entry{LastModified: time.Now()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.CanRevalidate(); got != tt.want {
				t.Errorf("CanRevalidate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetention(t *testing.T) {
	expired := &Entry{Expires: time.Now().Add(-time.Minute)}
	if got := retention(expired); got != 0 {
		t.Errorf("retention(expired, no validators) = %v, want 0", got)
	}

	expired.ETag = `"v1"`
	if got := retention(expired); got != RevalidateWindow {
		t.Errorf("retention(expired, etag) = %v, want %v", got, RevalidateWindow)
	}
}
