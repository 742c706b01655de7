package scheduleoccurrences

import (
	"context"
	"errors"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/logging"
	"eventual/internal/core/domain/syntax"
	"eventual/internal/core/services"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var Now = time.Date(2010, time.March, 2, 12, 30, 0, 0, time.UTC)

// "1 al 4 de marzo a las 10:00"
func mornings() syntax.Node {
	return syntax.NewGroup(
		"1 al 4 de marzo a las 10:00",
		syntax.NewDatePeriod("1 al 4", syntax.NewDay("1"), syntax.NewDay("4")),
		syntax.NewMonthName("marzo", time.March),
		syntax.NewTimeList("10:00", syntax.NewTimeOfDay("10:00")),
	)
}

type testServiceSuite struct {
	suite.Suite
	Logger    *logging.FakeLogger
	Grammar   *expression.TestGrammar
	Scheduler *expression.TestOccurrenceScheduler
	Service   services.Service[Input, Result]
}

func (s *testServiceSuite) SetupTest() {
	s.Logger = logging.NewFakeLogger()
	s.Grammar = expression.NewTestGrammar(mornings())
	s.Scheduler = expression.NewTestOccurrenceScheduler()
	s.Service = s.newService(10)
}

func (s *testServiceSuite) newService(limit int) services.Service[Input, Result] {
	now := func() time.Time { return Now }
	parser := expression.NewParser(now, map[expression.Language]expression.Grammar{expression.Spanish: s.Grammar})
	return New(s.Logger, parser, s.Scheduler, now, limit)
}

func TestScheduleOccurrencesService(t *testing.T) {
	suite.Run(t, new(testServiceSuite))
}

func (s *testServiceSuite) TestSchedulesFutureValues() {
	assert := s.Require()

	result, err := s.Service.Run(context.Background(), Input{Query: "1 al 4 de marzo a las 10:00"})

	assert.Nil(err)
	assert.False(result.Truncated)
	assert.Equal(result.Scheduled, s.Scheduler.Scheduled)
	assert.Len(result.Scheduled, 2)
	assert.Equal(calendar.MustTimestamp(2010, time.March, 3, 10, 0), result.Scheduled[0].Value)
	assert.Equal(21*time.Hour+30*time.Minute, result.Scheduled[0].Delay)
	assert.Equal(calendar.MustTimestamp(2010, time.March, 4, 10, 0), result.Scheduled[1].Value)
	assert.Equal(45*time.Hour+30*time.Minute, result.Scheduled[1].Delay)
	for _, o := range result.Scheduled {
		_, err := uuid.Parse(o.ID)
		assert.Nil(err)
		assert.Equal("1 al 4 de marzo a las 10:00", o.Query)
	}
	assert.NotEqual(result.Scheduled[0].ID, result.Scheduled[1].ID)
}

func (s *testServiceSuite) TestLimit() {
	assert := s.Require()

	result, err := s.newService(1).Run(context.Background(), Input{Query: "1 al 4 de marzo a las 10:00"})

	assert.Nil(err)
	assert.True(result.Truncated)
	assert.Len(s.Scheduler.Scheduled, 1)
}

func (s *testServiceSuite) TestPastYearSchedulesNothing() {
	assert := s.Require()

	result, err := s.Service.Run(context.Background(), Input{
		Query:       "1 al 4 de marzo a las 10:00",
		DefaultYear: c.NewOptional(2009, true),
	})

	assert.Nil(err)
	assert.Empty(result.Scheduled)
	assert.Empty(s.Scheduler.Scheduled)
}

func (s *testServiceSuite) TestMalformedSchedulesNothing() {
	assert := s.Require()
	s.Grammar.Tree = syntax.NewGroup(
		"4 de marzo, 31 de abril",
		syntax.NewDay("4"),
		syntax.NewMonthName("marzo", time.March),
		syntax.NewDay("31"),
		syntax.NewMonthName("abril", time.April),
	)

	_, err := s.Service.Run(context.Background(), Input{Query: "4 de marzo, 31 de abril"})

	assert.ErrorIs(err, calendar.ErrInvalidDate)
	assert.Empty(s.Scheduler.Scheduled)
	assert.Equal([]string{logging.INFO}, s.Logger.Levels())
}

func (s *testServiceSuite) TestSchedulerFailure() {
	assert := s.Require()
	s.Scheduler.Error = errors.New("channel closed")

	_, err := s.Service.Run(context.Background(), Input{Query: "1 al 4 de marzo a las 10:00"})

	assert.EqualError(err, "channel closed")
	assert.Equal([]string{logging.ERROR}, s.Logger.Levels())
}
