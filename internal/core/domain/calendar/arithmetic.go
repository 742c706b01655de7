package calendar

import (
	"time"

	"github.com/golang-module/carbon/v2"
)

func toCarbon(v Value) carbon.Carbon {
	return carbon.Time2Carbon(v.t).SetTimezone(carbon.UTC)
}

func fromCarbon(c carbon.Carbon) time.Time {
	return c.Carbon2Time().UTC()
}

func FirstOfMonth(year int, month time.Month) Value {
	return Value{t: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// LastOfMonth advances one month from the 1st and steps back a day.
func LastOfMonth(year int, month time.Month) Value {
	c := toCarbon(FirstOfMonth(year, month)).AddMonth().SubDay()
	return Value{t: fromCarbon(c)}
}

func DaysIn(year int, month time.Month) int {
	return LastOfMonth(year, month).Day()
}

// EachDay calls fn with every date from the date of `from` to the date of `to`
// inclusive, stopping early when fn returns false.
func EachDay(from Value, to Value, fn func(Value) bool) {
	end := toCarbon(to.Date())
	for c := toCarbon(from.Date()); c.Lte(end); c = c.AddDay() {
		if !fn(Value{t: fromCarbon(c)}) {
			return
		}
	}
}
