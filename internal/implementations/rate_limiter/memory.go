package ratelimiter

import (
	"context"
	e "eventual/internal/core/domain/errors"
	ratelimiter "eventual/internal/core/domain/rate_limiter"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxIdleBuckets = 10_000

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory is a token bucket limiter for a single process. Buckets refill
// continuously, so the limit is spread evenly over the interval.
type Memory struct {
	now     func() time.Time
	buckets map[string]*bucket
	lock    sync.Mutex
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Memory{now: now, buckets: make(map[string]*bucket)}
}

func (m *Memory) CheckLimit(ctx context.Context, key string, limit ratelimiter.Limit) ratelimiter.Result {
	if limit.Value == 0 {
		return ratelimiter.NotAllowed(limit.Interval.Duration())
	}
	now := m.now()

	m.lock.Lock()
	defer m.lock.Unlock()

	b := m.bucket(key, limit, now)
	reservation := b.limiter.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return ratelimiter.NotAllowed(delay)
	}
	return ratelimiter.Allowed(int(b.limiter.TokensAt(now)))
}

func (m *Memory) bucket(key string, limit ratelimiter.Limit, now time.Time) *bucket {
	bucketKey := key + "::" + limit.Interval.Duration().String()
	b, ok := m.buckets[bucketKey]
	if !ok {
		if len(m.buckets) >= maxIdleBuckets {
			m.sweep(now)
		}
		every := limit.Interval.Duration() / time.Duration(limit.Value)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), int(limit.Value))}
		m.buckets[bucketKey] = b
	}
	b.lastSeen = now
	return b
}

// sweep drops buckets that have been refilled completely.
func (m *Memory) sweep(now time.Time) {
	for k, b := range m.buckets {
		if b.limiter.TokensAt(now) >= float64(b.limiter.Burst()) {
			delete(m.buckets, k)
		}
	}
}
