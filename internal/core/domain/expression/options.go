package expression

import (
	c "eventual/internal/core/domain/common"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultEventSpan = 60 * time.Minute

type Options struct {
	Language    Language
	DefaultYear c.Optional[int]
	// EventSpan is how long a timestamped occurrence lasts for membership tests.
	// Zero means DefaultEventSpan.
	EventSpan time.Duration
}

func (o Options) Validate() error {
	if o.DefaultYear.IsPresent && (o.DefaultYear.Value < 1 || o.DefaultYear.Value > 9999) {
		return fmt.Errorf("default year %d is out of range, %w", o.DefaultYear.Value, ErrInvalidOption)
	}
	if o.EventSpan < 0 {
		return fmt.Errorf("event span %s is negative, %w", o.EventSpan, ErrInvalidOption)
	}
	return nil
}

// ParseDefaultYear reads a textual default year, an empty string means none.
func ParseDefaultYear(raw string) (c.Optional[int], error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.Optional[int]{}, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return c.Optional[int]{}, fmt.Errorf("default year %q is not an integer, %w", raw, ErrInvalidOption)
	}
	return c.NewOptional(year, true), nil
}
