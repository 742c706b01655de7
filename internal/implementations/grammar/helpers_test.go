package grammar

import (
	"context"
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/expression"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const defaultYear = 2010

type resolveCase struct {
	text     string
	expected []calendar.Value
}

func parse(t *testing.T, lang expression.Language, text string) *expression.Sequence {
	t.Helper()
	g, err := New(lang)
	require.Nil(t, err)
	root, err := g.Parse(context.Background(), text)
	require.Nil(t, err, text)
	return expression.NewSequence(root, defaultYear, 0)
}

func date(year int, month time.Month, day int) calendar.Value {
	return calendar.MustDate(year, month, day)
}

// span lists the dates from..to inclusive, keeping only the given weekdays if any.
func span(from calendar.Value, to calendar.Value, weekdays ...int) []calendar.Value {
	allowed := calendar.NewWeekdaySet(weekdays...)
	result := []calendar.Value{}
	calendar.EachDay(from, to, func(v calendar.Value) bool {
		if allowed.IsEmpty() || allowed.Contains(v.Weekday()) {
			result = append(result, v)
		}
		return true
	})
	return result
}

func month(year int, m time.Month, weekdays ...int) []calendar.Value {
	return span(calendar.FirstOfMonth(year, m), calendar.LastOfMonth(year, m), weekdays...)
}

func at(dates []calendar.Value, times ...calendar.TimeOfDay) []calendar.Value {
	result := []calendar.Value{}
	for _, d := range dates {
		for _, t := range times {
			result = append(result, d.At(t))
		}
	}
	return result
}

func clock(hour int, minute int) calendar.TimeOfDay {
	return calendar.TimeOfDay{Hour: hour, Minute: minute}
}

func concat(lists ...[]calendar.Value) []calendar.Value {
	result := []calendar.Value{}
	for _, l := range lists {
		result = append(result, l...)
	}
	return result
}

func runResolveCases(t *testing.T, lang expression.Language, cases []resolveCase) {
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			seq := parse(t, lang, c.text)

			values, err := seq.Values()
			require.Nil(t, err)
			require.Equal(t, c.expected, values)

			for _, v := range c.expected {
				ok, err := seq.Contains(v)
				require.Nil(t, err)
				require.True(t, ok, v.String())
			}

			first, last := c.expected[0], c.expected[len(c.expected)-1]
			ok, err := seq.Contains(first.Add(-24 * time.Hour))
			require.Nil(t, err)
			require.False(t, ok, first.String())
			ok, err = seq.Contains(last.Add(24 * time.Hour))
			require.Nil(t, err)
			require.False(t, ok, last.String())
		})
	}
}
