package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrParseValue   = errors.New("invalid date value")
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04"
)

// Value is a resolved calendar value: either a plain date or a date with a time of day.
// Values carry no time zone, wall clock fields are kept in UTC.
type Value struct {
	t       time.Time
	hasTime bool
}

func NewDate(year int, month time.Month, day int) (Value, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Value{}, fmt.Errorf("%04d-%02d-%02d does not exist, %w", year, int(month), day, ErrInvalidDate)
	}
	return Value{t: t}, nil
}

func NewTimestamp(year int, month time.Month, day int, at TimeOfDay) (Value, error) {
	date, err := NewDate(year, month, day)
	if err != nil {
		return Value{}, err
	}
	return date.At(at), nil
}

// MustDate panics on non-existent dates, meant for literals.
func MustDate(year int, month time.Month, day int) Value {
	v, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return v
}

// MustTimestamp panics on non-existent dates, meant for literals.
func MustTimestamp(year int, month time.Month, day int, hour int, minute int) Value {
	v, err := NewTimestamp(year, month, day, TimeOfDay{Hour: hour, Minute: minute})
	if err != nil {
		panic(err)
	}
	return v
}

// FromTime keeps the wall clock of t up to the minute.
func FromTime(t time.Time) Value {
	y, m, d := t.Date()
	return Value{
		t:       time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC),
		hasTime: true,
	}
}

// At places the value's date at the given time of day. Hours past 23 roll over
// into the following day.
func (v Value) At(at TimeOfDay) Value {
	offset := time.Duration(at.Hour)*time.Hour + time.Duration(at.Minute)*time.Minute
	return Value{t: v.Date().t.Add(offset), hasTime: true}
}

func (v Value) Date() Value {
	y, m, d := v.t.Date()
	return Value{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (v Value) IsTimestamp() bool {
	return v.hasTime
}

func (v Value) IsZero() bool {
	return v.t.IsZero()
}

func (v Value) Time() time.Time {
	return v.t
}

func (v Value) Year() int {
	return v.t.Year()
}

func (v Value) Month() time.Month {
	return v.t.Month()
}

func (v Value) Day() int {
	return v.t.Day()
}

func (v Value) TimeOfDay() TimeOfDay {
	return TimeOfDay{Hour: v.t.Hour(), Minute: v.t.Minute()}
}

// Weekday returns the weekday index, 0 is Sunday.
func (v Value) Weekday() int {
	return int(v.t.Weekday())
}

func (v Value) Equal(other Value) bool {
	return v.hasTime == other.hasTime && v.t.Equal(other.t)
}

func (v Value) Before(other Value) bool {
	return v.t.Before(other.t)
}

func (v Value) After(other Value) bool {
	return v.t.After(other.t)
}

func (v Value) SameDay(other Value) bool {
	return v.Date().t.Equal(other.Date().t)
}

func (v Value) Add(d time.Duration) Value {
	return Value{t: v.t.Add(d), hasTime: v.hasTime}
}

func (v Value) String() string {
	if v.hasTime {
		return v.t.Format(timestampLayout)
	}
	return v.t.Format(dateLayout)
}

func ParseValue(raw string) (Value, error) {
	raw = strings.Replace(strings.TrimSpace(raw), " ", "T", 1)
	if t, err := time.Parse(timestampLayout, raw); err == nil {
		return Value{t: t, hasTime: true}, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return Value{t: t}, nil
	}
	return Value{}, fmt.Errorf("%q is neither a date nor a timestamp, %w", raw, ErrParseValue)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
