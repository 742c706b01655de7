package expression

import (
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/syntax"
	"fmt"
)

// yield receives expanded values and returns false to stop the expansion.
type yield func(calendar.Value) bool

// each stamps the tree and expands its date-bearing nodes left to right.
// It reports false when fn asked to stop.
func each(root syntax.Node, seed Context, fn yield) (bool, error) {
	nodes, err := stamp(root, seed)
	if err != nil {
		return false, err
	}
	for _, n := range nodes {
		more, err := expand(n, fn)
		if err != nil || !more {
			return false, err
		}
	}
	return true, nil
}

func expand(s stamped, fn yield) (bool, error) {
	switch n := s.node.(type) {
	case *syntax.Day:
		return expandDay(n, s.ctx, fn)
	case *syntax.MonthPeriod:
		return expandMonthPeriod(n, s.ctx, fn)
	case *syntax.DatePeriod:
		return expandDatePeriod(n, s.ctx, fn)
	default:
		return false, fmt.Errorf("%T is not date-bearing, %w", s.node, ErrMalformedInput)
	}
}

func expandDay(n *syntax.Day, ctx Context, fn yield) (bool, error) {
	number, err := n.Number()
	if err != nil {
		return false, malformed(err)
	}
	if !ctx.Month.IsPresent {
		return false, fmt.Errorf("day %d has no month, %w", number, ErrMonthRequired)
	}
	date, err := calendar.NewDate(ctx.Year, ctx.Month.Value, number)
	if err != nil {
		return false, err
	}
	if !ctx.Allows(date) {
		return false, &WeekdayMismatchError{Date: date, Expected: ctx.Weekdays.First()}
	}
	if !ctx.HasTimes() {
		return fn(date), nil
	}
	for _, t := range ctx.Times {
		if !fn(date.At(t)) {
			return false, nil
		}
	}
	return true, nil
}

func expandMonthPeriod(n *syntax.MonthPeriod, ctx Context, fn yield) (bool, error) {
	month, err := n.Month().Value()
	if err != nil {
		return false, malformed(err)
	}
	return expandRange(calendar.FirstOfMonth(ctx.Year, month), calendar.LastOfMonth(ctx.Year, month), ctx, fn), nil
}

// expandDatePeriod walks both bounds with the period's context and enumerates
// from the first value of the start to the last value of the end.
func expandDatePeriod(n *syntax.DatePeriod, ctx Context, fn yield) (bool, error) {
	start, found, err := firstOf(n.Start(), ctx.nested())
	if err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("start of %q, %w", n.Text(), ErrEmptyRange)
	}
	end, found, err := lastOf(n.End(), ctx.nested())
	if err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("end of %q, %w", n.Text(), ErrEmptyRange)
	}
	return expandRange(start, end, ctx, fn), nil
}

// expandRange emits every allowed day between the dates of from and to inclusive,
// once per listed time when the context has times.
func expandRange(from calendar.Value, to calendar.Value, ctx Context, fn yield) bool {
	more := true
	calendar.EachDay(from, to, func(day calendar.Value) bool {
		if !ctx.Allows(day) {
			return true
		}
		if !ctx.HasTimes() {
			more = fn(day)
			return more
		}
		for _, t := range ctx.Times {
			if more = fn(day.At(t)); !more {
				return false
			}
		}
		return true
	})
	return more
}

func firstOf(node syntax.Node, seed Context) (first calendar.Value, found bool, err error) {
	_, err = each(node, seed, func(v calendar.Value) bool {
		first, found = v, true
		return false
	})
	return first, found, err
}

func lastOf(node syntax.Node, seed Context) (last calendar.Value, found bool, err error) {
	_, err = each(node, seed, func(v calendar.Value) bool {
		last, found = v, true
		return true
	})
	return last, found, err
}
