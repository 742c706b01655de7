package expression

import (
	"errors"
	"eventual/internal/core/domain/calendar"
	"fmt"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidOption       = errors.New("invalid option")
	ErrMalformedInput      = errors.New("malformed input")
	ErrEmptyRange          = errors.New("range bound produced no values")
	ErrEmptySequence       = errors.New("expression produced no values")
	ErrMonthRequired       = errors.New("month is required")
	ErrWeekdayMismatch     = errors.New("weekday mismatch")
)

// WeekdayMismatchError is raised when a stated weekday contradicts the stated date.
type WeekdayMismatchError struct {
	Date     calendar.Value
	Expected int
}

func (e *WeekdayMismatchError) Error() string {
	return fmt.Sprintf(
		"%s is %s, expected %s, %s",
		e.Date.Date(),
		calendar.WeekdayName(e.Date.Weekday()),
		calendar.WeekdayName(e.Expected),
		ErrWeekdayMismatch,
	)
}

func (e *WeekdayMismatchError) Is(target error) bool {
	return target == ErrWeekdayMismatch
}

func malformed(err error) error {
	return fmt.Errorf("%s, %w", err.Error(), ErrMalformedInput)
}

// IsInputError reports whether err is caused by the expression or its options
// rather than by the system resolving it.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrUnsupportedLanguage,
		ErrInvalidOption,
		ErrMalformedInput,
		ErrEmptyRange,
		ErrMonthRequired,
		ErrWeekdayMismatch,
		calendar.ErrInvalidDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
