package expression

import (
	"eventual/internal/core/domain/calendar"
	c "eventual/internal/core/domain/common"
	"time"
)

// Context is what a date-bearing node inherits from the phrase around it.
type Context struct {
	Year     int
	Month    c.Optional[time.Month]
	Weekdays calendar.WeekdaySet
	Times    []calendar.TimeOfDay
}

func (ctx Context) HasTimes() bool {
	return len(ctx.Times) > 0
}

// Allows reports whether a date passes the weekday filter, an empty filter allows everything.
func (ctx Context) Allows(date calendar.Value) bool {
	return ctx.Weekdays.IsEmpty() || ctx.Weekdays.Contains(date.Weekday())
}

// nested is the seed for the sub-expressions of a period. The weekday filter
// belongs to the period's own group and is not inherited.
func (ctx Context) nested() Context {
	return Context{Year: ctx.Year, Month: ctx.Month, Times: ctx.Times}
}
