package grammar

import (
	"context"
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"eventual/internal/core/domain/expression"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpanishMonths(t *testing.T) {
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "marzo", expected: month(2010, time.March)},
		{text: "MarZo", expected: month(2010, time.March)},
		{text: "marzo de 2009", expected: month(2009, time.March)},
		{text: "marzo del 2009", expected: month(2009, time.March)},
		{text: "marzo 2009", expected: month(2009, time.March)},
		{text: "marzo, 2009", expected: month(2009, time.March)},
		{text: "marzo '09", expected: month(2009, time.March)},
		{text: "sept '09", expected: month(2009, time.September)},
		{text: "febrero del 2008", expected: month(2008, time.February)},
	})
}

func TestSpanishWeekdaysOfMonth(t *testing.T) {
	mondaysAndTuesdays := month(2010, time.March, calendar.Monday, calendar.Tuesday)
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "lunes y martes marzo del 2010", expected: mondaysAndTuesdays},
		{text: "lunes y martes de marzo del 2010", expected: mondaysAndTuesdays},
		{text: "lunes y martes durante marzo del 2010", expected: mondaysAndTuesdays},
		{text: "lunes y martes durante todo marzo del 2010", expected: mondaysAndTuesdays},
		{text: "lunes y martes, marzo del 2010", expected: mondaysAndTuesdays},
	})
}

func TestSpanishSingleDays(t *testing.T) {
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "21 de marzo", expected: []calendar.Value{date(2010, time.March, 21)}},
		{text: "21 marzo", expected: []calendar.Value{date(2010, time.March, 21)}},
		{text: "domingo 21 de marzo", expected: []calendar.Value{date(2010, time.March, 21)}},
		{text: "domingo, 21 de marzo", expected: []calendar.Value{date(2010, time.March, 21)}},
		{text: "Sábado 20 de Marzo", expected: []calendar.Value{date(2010, time.March, 20)}},
	})
}

func TestSpanishDayLists(t *testing.T) {
	firstDays := []calendar.Value{date(2010, time.March, 1), date(2010, time.March, 2), date(2010, time.March, 3)}
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "1, 2 y 3 marzo", expected: firstDays},
		{text: "1, 2 y 3 de marzo", expected: firstDays},
		{text: "lunes 1, martes 2 y miércoles 3 de marzo", expected: firstDays},
		{
			text:     "31 de diciembre de 1998 y 1 de enero de 1999",
			expected: []calendar.Value{date(1998, time.December, 31), date(1999, time.January, 1)},
		},
		{
			text:     "31 de diciembre de 1998 \n 1 de enero de 1999",
			expected: []calendar.Value{date(1998, time.December, 31), date(1999, time.January, 1)},
		},
	})
}

func TestSpanishRanges(t *testing.T) {
	firstDays := span(date(2010, time.March, 1), date(2010, time.March, 3))
	autumn := span(date(2008, time.October, 1), date(2008, time.December, 2))
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "1 al 3 de marzo del '10", expected: firstDays},
		{text: "1 al 3, marzo del '10", expected: firstDays},
		{text: "del 1 al 3 de marzo del '10", expected: firstDays},
		{text: "del 1 al 3, marzo del '10", expected: firstDays},
		{text: "1-3 de marzo del 2010", expected: firstDays},
		{
			text:     "24 de febrero al 3 de marzo del 2010",
			expected: span(date(2010, time.February, 24), date(2010, time.March, 3)),
		},
		{
			text:     "24 de diciembre del 2009 al 3 de enero del 2010",
			expected: span(date(2009, time.December, 24), date(2010, time.January, 3)),
		},
		{
			text:     "24 de diciembre del 2009 al 3 de enero",
			expected: span(date(2009, time.December, 24), date(2010, time.January, 3)),
		},
		{text: "1 de octubre a 2 de diciembre del 2008", expected: autumn},
		{text: "1 de octubre al 2 de diciembre del 2008", expected: autumn},
		{text: "del miercoles 1 de octubre al martes 2 de diciembre del 2008", expected: autumn},
		{text: "octubre a diciembre del 2008", expected: span(date(2008, time.October, 1), date(2008, time.December, 31))},
	})
}

func TestSpanishFilteredRanges(t *testing.T) {
	march := func(weekdays ...int) []calendar.Value {
		return span(date(2010, time.March, 1), date(2010, time.March, 22), weekdays...)
	}
	autumn := span(date(2008, time.October, 1), date(2008, time.December, 2), calendar.Monday, calendar.Tuesday)
	runResolveCases(t, expression.Spanish, []resolveCase{
		{text: "lunes y martes del 1 de octubre al 2 de diciembre del 2008", expected: autumn},
		{text: "lunes y martes, del 1 de octubre al 2 de diciembre del 2008", expected: autumn},
		{text: "lunes y martes del 1 al 22 de marzo del '10", expected: march(calendar.Monday, calendar.Tuesday)},
		{text: "todos los lunes y martes del 1 al 22 de marzo del '10", expected: march(calendar.Monday, calendar.Tuesday)},
		{text: "los lunes y martes del 1 al 22 de marzo del '10", expected: march(calendar.Monday, calendar.Tuesday)},
		{text: "los lunes y los martes del 1 al 22 de marzo del '10", expected: march(calendar.Monday, calendar.Tuesday)},
		{text: "fines de semana del 1 al 22 de marzo del '10", expected: march(calendar.Saturday, calendar.Sunday)},
		{text: "entre semana del 1 al 22 de marzo del '10", expected: march(1, 2, 3, 4, 5)},
		{text: "lunes a viernes del 1 al 22 de marzo del '10", expected: march(1, 2, 3, 4, 5)},
		{text: "de lunes a viernes del 1 al 22 de marzo del '10", expected: march(1, 2, 3, 4, 5)},
		{text: "viernes a lunes del 1 al 22 de marzo del '10", expected: march(5, 6, 0, 1)},
		{
			text:     "lunes y martes de octubre del 2007 a diciembre del 2008",
			expected: span(date(2007, time.October, 1), date(2008, time.December, 31), calendar.Monday, calendar.Tuesday),
		},
	})
}

func TestSpanishCompoundPhraseTakesTrailingYear(t *testing.T) {
	runResolveCases(t, expression.Spanish, []resolveCase{
		{
			text: "1 de enero y lunes y martes del 1 de octubre al 2 de diciembre del 2008",
			expected: concat(
				[]calendar.Value{date(2008, time.January, 1)},
				span(date(2008, time.October, 1), date(2008, time.December, 2), calendar.Monday, calendar.Tuesday),
			),
		},
	})
}

func TestSpanishTimes(t *testing.T) {
	december := month(2010, time.December, calendar.Monday, calendar.Tuesday)
	runResolveCases(t, expression.Spanish, []resolveCase{
		{
			text:     "1 de enero del 2010 a las 15:00",
			expected: []calendar.Value{calendar.MustTimestamp(2010, time.January, 1, 15, 0)},
		},
		{text: "lunes y martes de diciembre del 2010 a las 15:00", expected: at(december, clock(15, 0))},
		{text: "lunes y martes de diciembre a las 15:00 hrs.", expected: at(december, clock(15, 0))},
		{text: "lunes y martes de diciembre a las 15:00hrs", expected: at(december, clock(15, 0))},
		{text: "lunes y martes de diciembre a las 15 horas", expected: at(december, clock(15, 0))},
		{text: "lunes y martes de diciembre a las 16:00 y 15:00 horas", expected: at(december, clock(15, 0), clock(16, 0))},
		{
			text:     "lunes y martes de diciembre a las 16:00, 17:00 y 15:00 horas",
			expected: at(december, clock(15, 0), clock(16, 0), clock(17, 0)),
		},
		{text: "lunes y martes de diciembre a las 3 am", expected: at(december, clock(3, 0))},
		{text: "lunes y martes de diciembre a las 3:00 pm", expected: at(december, clock(15, 0))},
		{
			text:     "1 y 2 de marzo a las 9:30 y a las 18:00",
			expected: at([]calendar.Value{date(2010, time.March, 1), date(2010, time.March, 2)}, clock(9, 30), clock(18, 0)),
		},
	})
}

func TestSpanishTimesExcludeOtherHours(t *testing.T) {
	seq := parse(t, expression.Spanish, "lunes y martes de diciembre a las 16:00, 17:00 y 15:00 horas")

	ok, err := seq.Contains(calendar.MustTimestamp(2010, time.December, 6, 14, 0))
	require.Nil(t, err)
	require.False(t, ok)

	ok, err = seq.Contains(calendar.MustTimestamp(2010, time.December, 6, 15, 45))
	require.Nil(t, err)
	require.True(t, ok)

	ok, err = seq.Contains(calendar.MustTimestamp(2010, time.December, 8, 15, 45))
	require.Nil(t, err)
	require.False(t, ok)
}

func TestSpanishWeekdayMismatch(t *testing.T) {
	for _, text := range []string{
		"lunes 21 de marzo",
		"lunes, 21 de marzo",
		"lunes 2, martes 2 y jueves 3 de marzo",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := parse(t, expression.Spanish, text).Values()
			require.ErrorIs(t, err, expression.ErrWeekdayMismatch)
		})
	}
}

func TestSpanishDefaultYear(t *testing.T) {
	parser := expression.NewParser(
		func() time.Time { return time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC) },
		All(),
	)

	seq, err := parser.Parse(
		context.Background(),
		"marzo",
		expression.Options{Language: expression.Spanish, DefaultYear: c.NewOptional(2007, true)},
	)
	require.Nil(t, err)

	values, err := seq.Values()
	require.Nil(t, err)
	require.Equal(t, month(2007, time.March), values)
}
