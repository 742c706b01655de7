package expression

import (
	"context"
	"errors"
	"eventual/internal/core/domain/calendar"
	"time"
)

var ErrStreamExists = errors.New("stream already exists")

// ValuesCache keeps materialized sequences keyed by the request that produced them.
type ValuesCache interface {
	Get(ctx context.Context, key string) (values []calendar.Value, ok bool, err error)
	Set(ctx context.Context, key string, values []calendar.Value, ttl time.Duration) error
}

// Occurrence is a single value scheduled to be announced once it is due.
type Occurrence struct {
	ID    string
	Query string
	Value calendar.Value
	Delay time.Duration
}

type OccurrenceScheduler interface {
	ScheduleOccurrence(ctx context.Context, o Occurrence) error
}

type StreamEventKind string

const (
	ValueEvent StreamEventKind = "value"
	EndEvent   StreamEventKind = "end"
	ErrorEvent StreamEventKind = "error"
)

type StreamEvent struct {
	Kind    StreamEventKind
	Value   calendar.Value
	Message string
}

// ValuePublisher delivers the values of a sequence to the subscribers of a stream.
// OpenStream fails with ErrStreamExists for a stream that is still open.
type ValuePublisher interface {
	OpenStream(ctx context.Context, streamID string) error
	Publish(ctx context.Context, streamID string, event StreamEvent) error
}
