package calendar

import (
	"sort"
	"time"
)

const (
	Sunday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeekdaySet is a set of weekday indices (0 is Sunday) that remembers insertion order.
type WeekdaySet struct {
	order []int
}

func NewWeekdaySet(days ...int) WeekdaySet {
	s := WeekdaySet{}
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add ignores indices outside 0..6 and duplicates.
func (s WeekdaySet) Add(day int) WeekdaySet {
	if day < Sunday || day > Saturday || s.Contains(day) {
		return s
	}
	order := make([]int, len(s.order), len(s.order)+1)
	copy(order, s.order)
	return WeekdaySet{order: append(order, day)}
}

func (s WeekdaySet) Contains(day int) bool {
	for _, d := range s.order {
		if d == day {
			return true
		}
	}
	return false
}

func (s WeekdaySet) IsEmpty() bool {
	return len(s.order) == 0
}

func (s WeekdaySet) Len() int {
	return len(s.order)
}

// First returns the first inserted weekday, -1 for an empty set.
func (s WeekdaySet) First() int {
	if s.IsEmpty() {
		return -1
	}
	return s.order[0]
}

func (s WeekdaySet) Slice() []int {
	days := make([]int, len(s.order))
	copy(days, s.order)
	sort.Ints(days)
	return days
}

func WeekdayName(day int) string {
	if day < Sunday || day > Saturday {
		return "unknown"
	}
	return time.Weekday(day).String()
}
