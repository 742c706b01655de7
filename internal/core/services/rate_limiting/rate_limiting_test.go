package ratelimiting

import (
	"context"
	"eventual/internal/core/domain/logging"
	ratelimiter "eventual/internal/core/domain/rate_limiter"
	"eventual/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type input struct {
	Value string
}

func (i input) GetRateLimitKey() string {
	return "test-rate-limiting-key::" + i.Value
}

type result struct{}

type testRateLimitingSuite struct {
	suite.Suite
	Logger      *logging.FakeLogger
	RateLimiter *ratelimiter.FakeRateLimiter
	Calls       int
	Inner       services.Service[input, result]
	Service     services.Service[input, result]
}

func (suite *testRateLimitingSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.RateLimiter = ratelimiter.NewFakeRateLimiter(false)
	suite.Calls = 0
	suite.Inner = services.Func[input, result](func(ctx context.Context, in input) (result, error) {
		suite.Calls++
		return result{}, nil
	})
	suite.Service = WithRateLimiting[input, result](
		suite.Logger,
		suite.RateLimiter,
		ratelimiter.Limit{Value: 10, Interval: ratelimiter.Minute},
		suite.Inner,
	)
}

func TestRateLimitingService(t *testing.T) {
	suite.Run(t, new(testRateLimitingSuite))
}

func (suite *testRateLimitingSuite) TestNotLimited() {
	ctx := context.Background()
	suite.RateLimiter.IsAllowed = true
	_, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Calls)
	assert.Equal([]string{"test-rate-limiting-key::test"}, suite.RateLimiter.CheckedKeys)
}

func (suite *testRateLimitingSuite) TestLimited() {
	ctx := context.Background()
	suite.RateLimiter.IsAllowed = false
	suite.RateLimiter.ResetIn = 42 * time.Second
	_, err := suite.Service.Run(ctx, input{Value: "test"})

	assert := suite.Require()
	assert.ErrorIs(err, ratelimiter.ErrRateLimitExceeded)
	var exceeded *ratelimiter.ExceededError
	assert.ErrorAs(err, &exceeded)
	assert.Equal(42*time.Second, exceeded.ResetIn)
	assert.Equal("rate limit exceeded, retry in 42s", err.Error())
	assert.Equal(0, suite.Calls)
	assert.Equal([]string{"warning"}, suite.Logger.Levels())
}

func (suite *testRateLimitingSuite) TestZeroLimitSkipsCheck() {
	service := WithRateLimiting[input, result](
		suite.Logger,
		suite.RateLimiter,
		ratelimiter.Limit{},
		suite.Inner,
	)
	_, err := service.Run(context.Background(), input{Value: "test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(1, suite.Calls)
	assert.Empty(suite.RateLimiter.CheckedKeys)
}

func (suite *testRateLimitingSuite) TestNilArguments() {
	assert := suite.Require()
	assert.Panics(func() {
		WithRateLimiting[input, result](nil, suite.RateLimiter, ratelimiter.Limit{}, suite.Inner)
	})
	assert.Panics(func() {
		WithRateLimiting[input, result](suite.Logger, nil, ratelimiter.Limit{}, suite.Inner)
	})
}
