package handlers

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/sessionstore"
	"github.com/justsurfingit/jobboard/internal/validation"
	"github.com/justsurfingit/jobboard/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T, backend *sessionstore.MemoryBackend) *Sessions {
	t.Helper()
	gate, err := validation.NewDefaultGate()
	require.NoError(t, err)
	return NewSessions(func(id string) *wizard.Controller {
		return wizard.NewController(gate, sessionstore.New(backend.Session(id)))
	})
}

func TestSessionsSerializeEvents(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t, sessionstore.NewMemoryBackend())

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sessions.Do(ctx, "tab", func(c *wizard.Controller) {
				_ = c.FieldChange(ctx, form.FieldSkills, c.State().FormData.Get(form.FieldSkills)+strconv.Itoa(i%10))
			})
		}()
	}
	wg.Wait()

	sessions.Do(ctx, "tab", func(c *wizard.Controller) {
		assert.Len(t, c.State().FormData.Get(form.FieldSkills), 50)
	})
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionsMountRestores(t *testing.T) {
	ctx := context.Background()
	backend := sessionstore.NewMemoryBackend()
	sessions := newTestSessions(t, backend)

	sessions.Do(ctx, "tab", func(c *wizard.Controller) {
		require.NoError(t, c.FieldChange(ctx, form.FieldCity, "Lisbon"))
	})
	sessions.Mount(ctx, "tab", func(c *wizard.Controller) {
		assert.Equal(t, "Lisbon", c.State().FormData.Get(form.FieldCity))
	})
	sessions.Do(ctx, "other", func(c *wizard.Controller) {
		assert.Equal(t, "", c.State().FormData.Get(form.FieldCity))
	})
}

func TestSessionsPurgeIdle(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t, sessionstore.NewMemoryBackend())
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	sessions.clock = func() time.Time { return now }

	sessions.Do(ctx, "old", func(*wizard.Controller) {})
	now = now.Add(2 * time.Hour)
	sessions.Do(ctx, "new", func(*wizard.Controller) {})

	removed, err := sessions.Purge(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, sessions.Len())
}
