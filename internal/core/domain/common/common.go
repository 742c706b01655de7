package common

import (
	"fmt"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

// FromPointer maps a nil pointer to an absent value.
func FromPointer[T any](value *T) Optional[T] {
	if value == nil {
		return Optional[T]{}
	}
	return Optional[T]{Value: *value, IsPresent: true}
}

func (p Optional[T]) Or(fallback T) T {
	if p.IsPresent {
		return p.Value
	}
	return fallback
}
