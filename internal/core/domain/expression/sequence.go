package expression

import (
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"eventual/internal/core/domain/syntax"
	"fmt"
	"time"
)

// Sequence is the ordered, lazily produced result of one parsed expression.
// Every call walks the tree again, nothing is memoized and the tree is never
// mutated, so a Sequence can be used from several goroutines.
type Sequence struct {
	root      syntax.Node
	year      int
	eventSpan time.Duration
}

func NewSequence(root syntax.Node, year int, eventSpan time.Duration) *Sequence {
	if root == nil {
		panic(e.NewNilArgumentError("root"))
	}
	if eventSpan <= 0 {
		eventSpan = DefaultEventSpan
	}
	return &Sequence{root: root, year: year, eventSpan: eventSpan}
}

func (s *Sequence) Text() string {
	return s.root.Text()
}

func (s *Sequence) Year() int {
	return s.year
}

func (s *Sequence) EventSpan() time.Duration {
	return s.eventSpan
}

// Each calls fn with every value in textual order until fn returns false.
// Values produced before a failing fragment are delivered before its error.
func (s *Sequence) Each(fn func(calendar.Value) bool) error {
	_, err := each(s.root, Context{Year: s.year}, fn)
	return err
}

// Values materializes the whole sequence, it fails if any fragment fails.
func (s *Sequence) Values() ([]calendar.Value, error) {
	return Map(s, func(v calendar.Value) calendar.Value { return v })
}

// First stops the walk at the first value.
func (s *Sequence) First() (calendar.Value, error) {
	first, found, err := firstOf(s.root, Context{Year: s.year})
	if err != nil {
		return calendar.Value{}, err
	}
	if !found {
		return calendar.Value{}, fmt.Errorf("%q, %w", s.Text(), ErrEmptySequence)
	}
	return first, nil
}

func (s *Sequence) Last() (calendar.Value, error) {
	last, found, err := lastOf(s.root, Context{Year: s.year})
	if err != nil {
		return calendar.Value{}, err
	}
	if !found {
		return calendar.Value{}, fmt.Errorf("%q, %w", s.Text(), ErrEmptySequence)
	}
	return last, nil
}

// Contains reports whether instant is one of the values. A timestamp also
// belongs to any produced timestamp t on the same day with t <= instant < t+span.
func (s *Sequence) Contains(instant calendar.Value) (bool, error) {
	found := false
	err := s.Each(func(v calendar.Value) bool {
		found = v.Equal(instant) || s.withinSpan(v, instant)
		return !found
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (s *Sequence) withinSpan(v calendar.Value, instant calendar.Value) bool {
	if !v.IsTimestamp() || !instant.IsTimestamp() || !v.SameDay(instant) {
		return false
	}
	return !instant.Before(v) && instant.Before(v.Add(s.eventSpan))
}

// Map applies fn to every value in order.
func Map[T any](s *Sequence, fn func(calendar.Value) T) ([]T, error) {
	result := []T{}
	err := s.Each(func(v calendar.Value) bool {
		result = append(result, fn(v))
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
