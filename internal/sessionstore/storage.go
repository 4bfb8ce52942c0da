// Package sessionstore persists wizard snapshots in tab-scoped key-value
// storage and enforces their time-to-live.
package sessionstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrQuotaExceeded is returned by a medium that has no room for a value.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Storage is a key-value medium scoped to one tab session.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Backend hands out the Storage of a tab session.
type Backend interface {
	Session(id string) Storage
}

// Purger deletes state last written before cutoff.
type Purger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

type memoryItem struct {
	value     string
	updatedAt time.Time
}

// MemoryBackend keeps every session's items in process memory.
type MemoryBackend struct {
	mu       sync.Mutex
	sessions map[string]map[string]memoryItem
	quota    int
	clock    func() time.Time
}

// MemoryOption configures a MemoryBackend.
type MemoryOption func(*MemoryBackend)

// WithQuota limits the total bytes of keys and values a single session may
// hold, mirroring the per-origin quota of browser session storage.
func WithQuota(bytes int) MemoryOption {
	return func(b *MemoryBackend) {
		b.quota = bytes
	}
}

// WithMemoryClock overrides the clock used to stamp writes.
func WithMemoryClock(clock func() time.Time) MemoryOption {
	return func(b *MemoryBackend) {
		b.clock = clock
	}
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend(opts ...MemoryOption) *MemoryBackend {
	b := &MemoryBackend{
		sessions: make(map[string]map[string]memoryItem),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Session implements Backend.
func (b *MemoryBackend) Session(id string) Storage {
	return &memoryStorage{backend: b, sessionID: id}
}

// Purge implements Purger.
func (b *MemoryBackend) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var removed int64
	for id, items := range b.sessions {
		for key, item := range items {
			if item.updatedAt.Before(cutoff) {
				delete(items, key)
				removed++
			}
		}
		if len(items) == 0 {
			delete(b.sessions, id)
		}
	}
	return removed, nil
}

type memoryStorage struct {
	backend   *MemoryBackend
	sessionID string
}

func (s *memoryStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	item, ok := s.backend.sessions[s.sessionID][key]
	return item.value, ok, nil
}

func (s *memoryStorage) SetItem(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	items := s.backend.sessions[s.sessionID]
	if s.backend.quota > 0 {
		used := len(key) + len(value)
		for k, item := range items {
			if k != key {
				used += len(k) + len(item.value)
			}
		}
		if used > s.backend.quota {
			return ErrQuotaExceeded
		}
	}
	if items == nil {
		items = make(map[string]memoryItem)
		s.backend.sessions[s.sessionID] = items
	}
	items[key] = memoryItem{value: value, updatedAt: s.backend.clock()}
	return nil
}

func (s *memoryStorage) RemoveItem(_ context.Context, key string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()

	items := s.backend.sessions[s.sessionID]
	delete(items, key)
	if len(items) == 0 {
		delete(s.backend.sessions, s.sessionID)
	}
	return nil
}
