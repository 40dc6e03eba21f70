package outbound

import (
	"context"
	"time"
)

// RateDecision is the outcome of taking one slot from a rate limit window.
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimiterPort counts requests per key in a sliding window.
type RateLimiterPort interface {
	// Take records one request for key and reports whether it fits in the window.
	Take(ctx context.Context, key string, limit int, window time.Duration) (RateDecision, error)
}

// StoredResponse is a completed HTTP response kept for replay.
type StoredResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ReplayStorePort keeps responses of state-changing requests keyed by the
// client's idempotency key.
type ReplayStorePort interface {
	// Load returns the stored response, or nil when none exists.
	Load(ctx context.Context, key string) (*StoredResponse, error)
	// Reserve marks key as in flight. It returns false when another request holds it.
	Reserve(ctx context.Context, key string, hold time.Duration) (bool, error)
	// Release drops the in-flight mark.
	Release(ctx context.Context, key string) error
	// Save stores resp under key for ttl.
	Save(ctx context.Context, key string, resp *StoredResponse, ttl time.Duration) error
}
