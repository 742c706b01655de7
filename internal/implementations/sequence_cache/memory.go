package sequencecache

import (
	"context"
	"eventual/internal/core/domain/calendar"
	e "eventual/internal/core/domain/errors"
	"sync"
	"time"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// Memory keeps encoded values in process. Entries are stored the same way the
// Redis cache stores them, so callers never share slices.
type Memory struct {
	now     func() time.Time
	entries map[string]memoryEntry
	lock    sync.RWMutex
}

func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &Memory{now: now, entries: make(map[string]memoryEntry)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]calendar.Value, bool, error) {
	m.lock.RLock()
	entry, ok := m.entries[key]
	m.lock.RUnlock()
	if !ok || !m.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	values, err := decode(entry.raw)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (m *Memory) Set(ctx context.Context, key string, values []calendar.Value, ttl time.Duration) error {
	raw, err := encode(values)
	if err != nil {
		return err
	}
	now := m.now()

	m.lock.Lock()
	defer m.lock.Unlock()
	for k, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = memoryEntry{raw: raw, expiresAt: now.Add(ttl)}
	return nil
}
