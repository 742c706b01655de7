package checkmembership

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/domain/syntax"
	"eventual/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2010, time.June, 15, 12, 0, 0, 0, time.UTC)

// "1 de marzo a las 15:00"
func afternoon() syntax.Node {
	return syntax.NewGroup(
		"1 de marzo a las 15:00",
		syntax.NewDay("1"),
		syntax.NewMonthName("marzo", time.March),
		syntax.NewTimeList("15:00", syntax.NewTimeOfDay("15:00")),
	)
}

type testServiceSuite struct {
	suite.Suite
	Logger  *logging.FakeLogger
	Grammar *expression.TestGrammar
	Service services.Service[Input, Result]
}

func (s *testServiceSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.Grammar = expression.NewTestGrammar(afternoon())
	s.Service = New(s.Logger, expression.NewParser(
		func() time.Time { return Now },
		map[expression.Language]expression.Grammar{expression.Spanish: s.Grammar},
	))
}

func TestCheckMembershipService(t *testing.T) {
	suite.Run(t, new(testServiceSuite))
}

func (s *testServiceSuite) TestContains() {
	cases := []struct {
		name     string
		span     time.Duration
		at       calendar.Value
		expected bool
	}{
		{"exact", 0, calendar.MustTimestamp(2010, time.March, 1, 15, 0), true},
		{"inside default span", 0, calendar.MustTimestamp(2010, time.March, 1, 15, 59), true},
		{"end of default span", 0, calendar.MustTimestamp(2010, time.March, 1, 16, 0), false},
		{"inside custom span", 2 * time.Hour, calendar.MustTimestamp(2010, time.March, 1, 16, 30), true},
		{"before start", 0, calendar.MustTimestamp(2010, time.March, 1, 14, 59), false},
		{"other day", 0, calendar.MustTimestamp(2010, time.March, 2, 15, 0), false},
		{"date only", 0, calendar.MustDate(2010, time.March, 1), false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			result, err := s.Service.Run(context.Background(), Input{
				Query:     "1 de marzo a las 15:00",
				EventSpan: tc.span,
				At:        tc.at,
			})
			s.Require().Nil(err)
			s.Require().Equal(tc.expected, result.Contains)
		})
	}
}

func (s *testServiceSuite) TestDefaultYear() {
	assert := s.Require()

	result, err := s.Service.Run(context.Background(), Input{
		Query:       "1 de marzo a las 15:00",
		DefaultYear: c.NewOptional(2009, true),
		At:          calendar.MustTimestamp(2009, time.March, 1, 15, 30),
	})

	assert.Nil(err)
	assert.True(result.Contains)
}

func (s *testServiceSuite) TestNegativeSpan() {
	assert := s.Require()

	_, err := s.Service.Run(context.Background(), Input{
		Query:     "1 de marzo a las 15:00",
		EventSpan: -time.Minute,
		At:        calendar.MustDate(2010, time.March, 1),
	})

	assert.ErrorIs(err, expression.ErrInvalidOption)
	assert.Equal([]string{logging.INFO}, s.Logger.Levels())
}

func (s *testServiceSuite) TestMismatchSurfaces() {
	assert := s.Require()
	s.Grammar.Tree = syntax.NewGroup(
		"lunes 21 de marzo",
		syntax.NewGroup("lunes 21", syntax.NewWeekdayFilter("lunes", syntax.Weekday(1)), syntax.NewDay("21")),
		syntax.NewMonthName("marzo", time.March),
	)

	_, err := s.Service.Run(context.Background(), Input{
		Query: "lunes 21 de marzo",
		At:    calendar.MustDate(2010, time.March, 22),
	})

	assert.ErrorIs(err, expression.ErrWeekdayMismatch)
}
