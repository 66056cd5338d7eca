package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Atomic INCR with expiry on first hit. Returns {count, ttl_ms}.
var fixedWindowScript = redis.NewScript(`
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`)

// Decision is the outcome of one limiter check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindowLimiter counts hits per key in fixed windows stored in Redis.
// A nil client or non-positive limit admits everything.
type FixedWindowLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewFixedWindowLimiter builds a limiter; window defaults to one minute.
func NewFixedWindowLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow records a hit for identity and reports whether it is within the limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, identity string) (Decision, error) {
	if l == nil || l.rdb == nil || l.limit <= 0 {
		return Decision{Allowed: true, Limit: l.limitOrZero(), Remaining: l.limitOrZero()}, nil
	}

	bucket := max(int64(1), int64(l.window.Seconds()))
	key := fmt.Sprintf("rl:%s:%s:%d", l.prefix, identity, time.Now().Unix()/bucket)
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis eval: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("ratelimit redis eval: unexpected result %v", res)
	}

	count := int(res[0])
	ttl := time.Duration(res[1]) * time.Millisecond

	d := Decision{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: max(0, l.limit-count),
	}
	if !d.Allowed {
		d.RetryAfter = l.window
		if ttl > 0 {
			d.RetryAfter = ttl
		}
	}
	return d, nil
}

func (l *FixedWindowLimiter) limitOrZero() int {
	if l == nil {
		return 0
	}
	return l.limit
}
