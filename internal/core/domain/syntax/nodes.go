// Package syntax holds the typed tree a grammar produces for one date expression.
// Nodes are immutable once built and may be shared by concurrent walks.
package syntax

import (
	"errors"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedNode = errors.New("malformed syntax node")

type Visitor interface {
	VisitGroup(n *Group) error
	VisitYear(n *Year) error
	VisitMonthName(n *MonthName) error
	VisitWeekdayFilter(n *WeekdayFilter) error
	VisitDay(n *Day) error
	VisitMonthPeriod(n *MonthPeriod) error
	VisitDatePeriod(n *DatePeriod) error
	VisitTimeList(n *TimeList) error
	VisitTimeOfDay(n *TimeOfDay) error
}

type Node interface {
	Text() string
	Children() []Node
	Accept(v Visitor) error
}

// Group is any node that is not date-bearing by itself.
type Group struct {
	text     string
	children []Node
}

func NewGroup(text string, children ...Node) *Group {
	return &Group{text: text, children: children}
}

func (n *Group) Text() string { return n.text }
func (n *Group) Children() []Node { return n.children }
func (n *Group) Accept(v Visitor) error { return v.VisitGroup(n) }

var reYear = regexp.MustCompile(`(')?(\d{2,4})`)

type Year struct {
	text string
}

func NewYear(text string) *Year {
	return &Year{text: text}
}

func (n *Year) Text() string { return n.text }
func (n *Year) Children() []Node { return nil }
func (n *Year) Accept(v Visitor) error { return v.VisitYear(n) }

// Value reads the year digits, an apostrophe prefix ('09) puts the year in the 2000s.
func (n *Year) Value() (int, error) {
	match := reYear.FindStringSubmatch(n.text)
	if match == nil {
		return 0, fmt.Errorf("year %q has no digits, %w", n.text, ErrMalformedNode)
	}
	value, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, fmt.Errorf("year %q, %w", n.text, ErrMalformedNode)
	}
	if match[1] != "" {
		value += 2000
	}
	return value, nil
}

type MonthName struct {
	text  string
	month time.Month
}

// NewMonthName takes the month already looked up in the grammar's name table.
func NewMonthName(text string, month time.Month) *MonthName {
	return &MonthName{text: text, month: month}
}

func (n *MonthName) Text() string { return n.text }
func (n *MonthName) Children() []Node { return nil }
func (n *MonthName) Accept(v Visitor) error { return v.VisitMonthName(n) }

func (n *MonthName) Value() (time.Month, error) {
	if n.month < time.January || n.month > time.December {
		return 0, fmt.Errorf("month %q is out of range, %w", n.text, ErrMalformedNode)
	}
	return n.month, nil
}

type Day struct {
	text string
}

func NewDay(text string) *Day {
	return &Day{text: text}
}

func (n *Day) Text() string { return n.text }
func (n *Day) Children() []Node { return nil }
func (n *Day) Accept(v Visitor) error { return v.VisitDay(n) }

func (n *Day) Number() (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(n.text))
	if err != nil {
		return 0, fmt.Errorf("day %q is not a number, %w", n.text, ErrMalformedNode)
	}
	return number, nil
}

// MonthPeriod is a whole named month.
type MonthPeriod struct {
	text  string
	month *MonthName
}

func NewMonthPeriod(text string, month *MonthName) *MonthPeriod {
	if month == nil {
		panic(e.NewNilArgumentError("month"))
	}
	return &MonthPeriod{text: text, month: month}
}

func (n *MonthPeriod) Text() string { return n.text }
func (n *MonthPeriod) Children() []Node { return []Node{n.month} }
func (n *MonthPeriod) Accept(v Visitor) error { return v.VisitMonthPeriod(n) }
func (n *MonthPeriod) Month() *MonthName { return n.month }

// DatePeriod spans from the first value of Start to the last value of End.
type DatePeriod struct {
	text  string
	start Node
	end   Node
}

func NewDatePeriod(text string, start Node, end Node) *DatePeriod {
	if start == nil {
		panic(e.NewNilArgumentError("start"))
	}
	if end == nil {
		panic(e.NewNilArgumentError("end"))
	}
	return &DatePeriod{text: text, start: start, end: end}
}

func (n *DatePeriod) Text() string { return n.text }
func (n *DatePeriod) Children() []Node { return []Node{n.start, n.end} }
func (n *DatePeriod) Accept(v Visitor) error { return v.VisitDatePeriod(n) }
func (n *DatePeriod) Start() Node { return n.start }
func (n *DatePeriod) End() Node { return n.end }

type TimeList struct {
	text  string
	times []*TimeOfDay
}

func NewTimeList(text string, times ...*TimeOfDay) *TimeList {
	for _, t := range times {
		if t == nil {
			panic(e.NewNilArgumentError("times"))
		}
	}
	return &TimeList{text: text, times: times}
}

func (n *TimeList) Text() string { return n.text }

func (n *TimeList) Children() []Node {
	children := make([]Node, len(n.times))
	for i, t := range n.times {
		children[i] = t
	}
	return children
}

func (n *TimeList) Accept(v Visitor) error { return v.VisitTimeList(n) }

// Times returns the listed times sorted by hour and minute.
func (n *TimeList) Times() ([]calendar.TimeOfDay, error) {
	times := make([]calendar.TimeOfDay, 0, len(n.times))
	for _, node := range n.times {
		t, err := node.Value()
		if err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	sort.SliceStable(times, func(i, j int) bool { return times[i].Less(times[j]) })
	return times, nil
}

var (
	reDigits    = regexp.MustCompile(`\d+`)
	reNonLetter = regexp.MustCompile(`[^a-z]`)
)

type TimeOfDay struct {
	text string
}

func NewTimeOfDay(text string) *TimeOfDay {
	return &TimeOfDay{text: text}
}

func (n *TimeOfDay) Text() string { return n.text }
func (n *TimeOfDay) Children() []Node { return nil }
func (n *TimeOfDay) Accept(v Visitor) error { return v.VisitTimeOfDay(n) }

// Value reads "15", "15:30", "3 pm" or "3:00 p.m.". A pm marker adds 12 hours,
// am and noon are left untouched. Hours above 12 take no marker.
func (n *TimeOfDay) Value() (calendar.TimeOfDay, error) {
	numbers := reDigits.FindAllString(n.text, 2)
	if len(numbers) == 0 {
		return calendar.TimeOfDay{}, fmt.Errorf("time %q has no hour, %w", n.text, ErrMalformedNode)
	}
	hour, _ := strconv.Atoi(numbers[0])
	minute := 0
	if len(numbers) > 1 {
		minute, _ = strconv.Atoi(numbers[1])
	}
	if hour > 23 || minute > 59 {
		return calendar.TimeOfDay{}, fmt.Errorf("time %q is out of range, %w", n.text, ErrMalformedNode)
	}
	marker := reNonLetter.ReplaceAllString(strings.ToLower(n.text), "")
	if (marker == "am" || marker == "pm") && hour > 12 {
		return calendar.TimeOfDay{}, fmt.Errorf("time %q is out of range, %w", n.text, ErrMalformedNode)
	}
	if marker == "pm" {
		hour += 12
	}
	return calendar.TimeOfDay{Hour: hour, Minute: minute}, nil
}
