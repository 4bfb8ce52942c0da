package sessionstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/justsurfingit/jobboard/internal/snapshot"
	"github.com/rs/zerolog"
)

const (
	// Key is the fixed storage key of the wizard snapshot.
	Key = "signupWizardState"

	// DefaultTTL is how long a snapshot stays restorable after its last write.
	DefaultTTL = time.Hour
)

// envelope is the stored JSON value: the snapshot body plus the Unix
// millisecond time of the write.
type envelope struct {
	Timestamp int64 `json:"timestamp"`
	snapshot.Body
}

// SnapshotStore reads and writes the wizard snapshot of one tab session.
// Storage failures never reach the caller: a failed write is dropped and a
// failed or corrupt read looks like an empty store.
type SnapshotStore struct {
	storage Storage
	ttl     time.Duration
	clock   func() time.Time
	log     zerolog.Logger
}

// Option configures a SnapshotStore.
type Option func(*SnapshotStore)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *SnapshotStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(s *SnapshotStore) {
		s.clock = clock
	}
}

// WithLogger sets the logger that records swallowed storage failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *SnapshotStore) {
		s.log = log
	}
}

// New returns a store over storage.
func New(storage Storage, opts ...Option) *SnapshotStore {
	s := &SnapshotStore{
		storage: storage,
		ttl:     DefaultTTL,
		clock:   time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write stamps body with the current time and stores it.
func (s *SnapshotStore) Write(ctx context.Context, body snapshot.Body) {
	raw, err := json.Marshal(envelope{Timestamp: s.clock().UnixMilli(), Body: body})
	if err != nil {
		s.log.Debug().Err(err).Msg("encode wizard snapshot")
		return
	}
	if err := s.storage.SetItem(ctx, Key, string(raw)); err != nil {
		s.log.Debug().Err(err).Msg("write wizard snapshot")
	}
}

// Read returns the stored body. It reports false when nothing is stored, the
// value cannot be parsed, or the snapshot is older than the TTL; an expired
// snapshot is removed as part of the read.
func (s *SnapshotStore) Read(ctx context.Context) (snapshot.Body, bool) {
	raw, ok, err := s.storage.GetItem(ctx, Key)
	if err != nil {
		s.log.Debug().Err(err).Msg("read wizard snapshot")
		return snapshot.Body{}, false
	}
	if !ok {
		return snapshot.Body{}, false
	}

	var stored envelope
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Debug().Err(err).Msg("decode wizard snapshot")
		return snapshot.Body{}, false
	}

	age := s.clock().Sub(time.UnixMilli(stored.Timestamp))
	if age > s.ttl {
		s.log.Debug().Dur("age", age).Msg("discard expired wizard snapshot")
		s.Clear(ctx)
		return snapshot.Body{}, false
	}
	return stored.Body, true
}

// Clear removes the snapshot.
func (s *SnapshotStore) Clear(ctx context.Context) {
	if err := s.storage.RemoveItem(ctx, Key); err != nil {
		s.log.Debug().Err(err).Msg("clear wizard snapshot")
	}
}
