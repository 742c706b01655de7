package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// ExceededError reports when the exhausted window frees up again.
type ExceededError struct {
	Key     string
	ResetIn time.Duration
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s, retry in %s", ErrRateLimitExceeded, e.ResetIn.Round(time.Second))
}

func (e *ExceededError) Unwrap() error {
	return ErrRateLimitExceeded
}

type Interval struct {
	value int
}

var (
	Second = Interval{value: -1}
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

func (i Interval) Duration() time.Duration {
	switch i {
	case Second:
		return time.Second
	case Hour:
		return time.Hour
	}
	return time.Minute
}

type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
	Remaining int
	ResetIn   time.Duration
}

func Allowed(remaining int) Result {
	return Result{IsAllowed: true, Remaining: remaining}
}

func NotAllowed(resetIn time.Duration) Result {
	return Result{IsAllowed: false, ResetIn: resetIn}
}

type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}
