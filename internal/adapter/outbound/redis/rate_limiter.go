package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uniedit/orderflow/internal/port/outbound"
)

const rateLimitKeyPrefix = "orderflow:ratelimit:"

// slidingWindow trims the window, admits the request when there is room and
// returns {admitted, count, oldest}. Times are unix milliseconds.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
local count = redis.call('ZCARD', key)
local admitted = 0
if count < limit then
  redis.call('ZADD', key, now, ARGV[4])
  count = count + 1
  admitted = 1
end
redis.call('PEXPIRE', key, window)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local first = now
if oldest[2] then first = tonumber(oldest[2]) end
return {admitted, count, first}
`)

type rateLimiter struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRateLimiter creates a sliding window rate limiter backed by a sorted set per key.
func NewRateLimiter(client redis.UniversalClient) outbound.RateLimiterPort {
	return &rateLimiter{client: client, now: time.Now}
}

func (r *rateLimiter) Take(ctx context.Context, key string, limit int, window time.Duration) (outbound.RateDecision, error) {
	now := r.now().UnixMilli()

	res, err := slidingWindow.Run(ctx, r.client, []string{rateLimitKeyPrefix + key},
		now, window.Milliseconds(), limit, uuid.NewString()).Int64Slice()
	if err != nil {
		return outbound.RateDecision{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(res) != 3 {
		return outbound.RateDecision{}, fmt.Errorf("rate limit %s: unexpected reply %v", key, res)
	}

	remaining := limit - int(res[1])
	if remaining < 0 {
		remaining = 0
	}
	return outbound.RateDecision{
		Allowed:   res[0] == 1,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.UnixMilli(res[2]).Add(window),
	}, nil
}

var _ outbound.RateLimiterPort = (*rateLimiter)(nil)
