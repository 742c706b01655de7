package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type FakeRateLimiter struct {
	IsAllowed   bool
	ResetIn     time.Duration
	CheckedKeys []string
	lock        sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed, ResetIn: time.Minute}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	defer rl.lock.Unlock()
	rl.CheckedKeys = append(rl.CheckedKeys, key)
	if rl.IsAllowed {
		return Allowed(int(limit.Value) - len(rl.CheckedKeys))
	}
	return NotAllowed(rl.ResetIn)
}
