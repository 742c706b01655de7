package expression

import (
	"context"
	"eventual/internal/core/domain/calendar"
	"eventual/internal/core/domain/syntax"
	"sync"
	"time"
)

// TestGrammar returns Tree for every text, or Error when set.
type TestGrammar struct {
	Tree   syntax.Node
	Error  error
	Parsed []string
	lock   sync.Mutex
}

func NewTestGrammar(tree syntax.Node) *TestGrammar {
	return &TestGrammar{Tree: tree}
}

func (g *TestGrammar) Parse(ctx context.Context, text string) (syntax.Node, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.Parsed = append(g.Parsed, text)
	if g.Error != nil {
		return nil, g.Error
	}
	return g.Tree, nil
}

type TestValuesCache struct {
	GetError error
	SetError error
	Entries  map[string][]calendar.Value
	TTLs     map[string]time.Duration
	Hits     int
	lock     sync.Mutex
}

func NewTestValuesCache() *TestValuesCache {
	return &TestValuesCache{
		Entries: make(map[string][]calendar.Value),
		TTLs:    make(map[string]time.Duration),
	}
}

func (c *TestValuesCache) Get(ctx context.Context, key string) ([]calendar.Value, bool, error) {
	if c.GetError != nil {
		return nil, false, c.GetError
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	values, ok := c.Entries[key]
	if ok {
		c.Hits++
	}
	return values, ok, nil
}

func (c *TestValuesCache) Set(ctx context.Context, key string, values []calendar.Value, ttl time.Duration) error {
	if c.SetError != nil {
		return c.SetError
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Entries[key] = values
	c.TTLs[key] = ttl
	return nil
}

type TestOccurrenceScheduler struct {
	Scheduled []Occurrence
	Error     error
	lock      sync.Mutex
}

func NewTestOccurrenceScheduler() *TestOccurrenceScheduler {
	return &TestOccurrenceScheduler{}
}

func (s *TestOccurrenceScheduler) ScheduleOccurrence(ctx context.Context, o Occurrence) error {
	if s.Error != nil {
		return s.Error
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Scheduled = append(s.Scheduled, o)
	return nil
}

type TestValuePublisher struct {
	Streams      []string
	Events       map[string][]StreamEvent
	OpenError    error
	PublishError error
	lock         sync.Mutex
}

func NewTestValuePublisher() *TestValuePublisher {
	return &TestValuePublisher{Events: make(map[string][]StreamEvent)}
}

func (p *TestValuePublisher) OpenStream(ctx context.Context, streamID string) error {
	if p.OpenError != nil {
		return p.OpenError
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	for _, s := range p.Streams {
		if s == streamID {
			return ErrStreamExists
		}
	}
	p.Streams = append(p.Streams, streamID)
	return nil
}

func (p *TestValuePublisher) Publish(ctx context.Context, streamID string, event StreamEvent) error {
	if p.PublishError != nil {
		return p.PublishError
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Events[streamID] = append(p.Events[streamID], event)
	return nil
}

func (p *TestValuePublisher) EventsOf(streamID string) []StreamEvent {
	p.lock.Lock()
	defer p.lock.Unlock()
	events := make([]StreamEvent, len(p.Events[streamID]))
	copy(events, p.Events[streamID])
	return events
}
