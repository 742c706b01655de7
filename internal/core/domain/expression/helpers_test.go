package expression

import (
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/syntax"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func group(children ...syntax.Node) *syntax.Group {
	return syntax.NewGroup("", children...)
}

func day(number int) *syntax.Day {
	return syntax.NewDay(strconv.Itoa(number))
}

func month(m time.Month) *syntax.MonthName {
	return syntax.NewMonthName(m.String(), m)
}

func monthPeriod(m time.Month) *syntax.MonthPeriod {
	return syntax.NewMonthPeriod(m.String(), month(m))
}

func year(text string) *syntax.Year {
	return syntax.NewYear(text)
}

func weekdays(days ...int) *syntax.WeekdayFilter {
	terms := make([]syntax.WeekdayTerm, len(days))
	for i, d := range days {
		terms[i] = syntax.Weekday(d)
	}
	return syntax.NewWeekdayFilter("", terms...)
}

func times(texts ...string) *syntax.TimeList {
	nodes := make([]*syntax.TimeOfDay, len(texts))
	for i, text := range texts {
		nodes[i] = syntax.NewTimeOfDay(text)
	}
	return syntax.NewTimeList("", nodes...)
}

func period(start syntax.Node, end syntax.Node) *syntax.DatePeriod {
	return syntax.NewDatePeriod("", start, end)
}

func resolve(t *testing.T, root syntax.Node, initialYear int) []calendar.Value {
	t.Helper()
	values, err := NewSequence(root, initialYear, 0).Values()
	require.Nil(t, err)
	return values
}

func dates(t *testing.T, from calendar.Value, to calendar.Value, keep func(calendar.Value) bool) []calendar.Value {
	t.Helper()
	result := []calendar.Value{}
	calendar.EachDay(from, to, func(v calendar.Value) bool {
		if keep == nil || keep(v) {
			result = append(result, v)
		}
		return true
	})
	return result
}
