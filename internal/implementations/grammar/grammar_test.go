package grammar

import (
	"context"
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/expression"
	"eventual/internal/core/domain/syntax"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLanguage(t *testing.T) {
	_, err := New(expression.Language("fr"))
	require.ErrorIs(t, err, expression.ErrUnsupportedLanguage)
}

func TestAllCoversEveryLanguage(t *testing.T) {
	grammars := All()
	require.Len(t, grammars, 2)
	require.Contains(t, grammars, expression.Spanish)
	require.Contains(t, grammars, expression.English)
}

func TestNormalize(t *testing.T) {
	normalized, err := normalize("Miércoles 3 de Marzo a las 3 p.m.")
	require.Nil(t, err)
	require.Equal(t, "miercoles 3 de marzo a las 3 pm", normalized)
}

func TestSplit(t *testing.T) {
	words, err := split("1º, 2nd y 3 de marzo del '10 a las 15:00hrs\n")
	require.Nil(t, err)
	require.Equal(t, []string{"1º", ",", "2nd", "y", "3", "de", "marzo", "del", "'10", "a", "las", "15:00", "hrs", "\n"}, words)
}

func TestTokenizeDropsFillers(t *testing.T) {
	words, err := split("los lunes y los martes del 1")
	require.Nil(t, err)

	tokens, err := tokenize(words, spanish())
	require.Nil(t, err)

	kinds := []kind{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
	}
	require.Equal(t, []kind{kindWeekday, kindSep, kindWeekday, kindNumber}, kinds)
	require.True(t, tokens[0].afterFiller)
	require.False(t, tokens[1].afterFiller)
	require.True(t, tokens[3].afterFiller)
}

func TestTokenizePrefersLongestPhrase(t *testing.T) {
	words, err := split("fines de semana a las 3")
	require.Nil(t, err)

	tokens, err := tokenize(words, spanish())
	require.Nil(t, err)
	require.Len(t, tokens, 3)
	require.Equal(t, kindWeekend, tokens[0].kind)
	require.Equal(t, kindTimeIntro, tokens[1].kind)
	require.Equal(t, "a las", tokens[1].text)
}

func describe(n syntax.Node) string {
	switch node := n.(type) {
	case *syntax.Group:
		parts := []string{}
		for _, child := range node.Children() {
			parts = append(parts, describe(child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *syntax.DatePeriod:
		return fmt.Sprintf("period[%s %s]", describe(node.Start()), describe(node.End()))
	case *syntax.MonthPeriod:
		return "month_period:" + node.Month().Text()
	case *syntax.MonthName:
		return "month:" + node.Text()
	case *syntax.Year:
		return "year:" + node.Text()
	case *syntax.Day:
		return "day:" + node.Text()
	case *syntax.WeekdayFilter:
		return "weekdays:" + node.Text()
	case *syntax.TimeList:
		parts := []string{}
		for _, child := range node.Children() {
			parts = append(parts, child.Text())
		}
		return "times:" + strings.Join(parts, ",")
	default:
		return n.Text()
	}
}

func TestTreeShape(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{text: "marzo '09", expected: "(month_period:marzo year:'09)"},
		{text: "1, 2 y 3 de marzo", expected: "(day:1 day:2 day:3 month:marzo)"},
		{text: "domingo 21 de marzo", expected: "((weekdays:domingo day:21) month:marzo)"},
		{
			text:     "lunes y martes de marzo a las 16:00 y 3 pm",
			expected: "((weekdays:lunes y martes month_period:marzo times:16:00,3 pm))",
		},
		{
			text:     "1 al 3 de marzo del '10",
			expected: "(period[(day:1) (day:3)] month:marzo year:'10)",
		},
		{
			text:     "24 de diciembre del 2009 al 3 de enero del 2010",
			expected: "(period[(day:24 month:diciembre year:2009) (day:3 month:enero)] year:2010)",
		},
		{
			text:     "24 de diciembre del 2009 al 3 de enero",
			expected: "(period[(day:24 month:diciembre year:2009) (day:3 month:enero)])",
		},
		{
			text:     "1 de enero y fines de semana del 1 de octubre al 2 de diciembre del 2008",
			expected: "(day:1 month:enero (weekdays:fines de semana period[(day:1 month:octubre) (day:2 month:diciembre)] year:2008))",
		},
		{
			text:     "lunes 1, martes 2 de marzo",
			expected: "((weekdays:lunes day:1) (weekdays:martes day:2) month:marzo)",
		},
	}

	g, err := New(expression.Spanish)
	require.Nil(t, err)
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			root, err := g.Parse(context.Background(), c.text)
			require.Nil(t, err)
			require.Equal(t, c.expected, describe(root))
		})
	}
}

func TestMalformedInput(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"lunes",
		"mañana",
		"32 de marzo",
		"marzo marzo",
		"1 de marzo;",
		"1 de enero del 2010 de las 15:00 a las 16:00",
		"1 de enero del 2010 a las 15:00 a 16:00",
		"1 al",
	}

	g, err := New(expression.Spanish)
	require.Nil(t, err)
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			_, err := g.Parse(context.Background(), text)
			require.ErrorIs(t, err, expression.ErrMalformedInput)
		})
	}
}

func TestParseHonorsCanceledContext(t *testing.T) {
	g, err := New(expression.Spanish)
	require.Nil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.Parse(ctx, "marzo")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNonExistentDateFailsOnExpansion(t *testing.T) {
	_, err := parse(t, expression.Spanish, "30 de febrero").Values()
	require.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestMeridiemHourAboveTwelveFailsOnExpansion(t *testing.T) {
	_, err := parse(t, expression.Spanish, "1 de marzo a las 15 pm").Values()
	require.ErrorIs(t, err, expression.ErrMalformedInput)
}

func TestGrammarIsSafeForConcurrentUse(t *testing.T) {
	g, err := New(expression.Spanish)
	require.Nil(t, err)

	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(day int) {
			_, err := g.Parse(context.Background(), fmt.Sprintf("%d de marzo a las 10:00", day))
			errs <- err
		}(i + 1)
	}
	for i := 0; i < 10; i++ {
		require.Nil(t, <-errs)
	}
}
