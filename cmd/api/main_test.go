package main

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/jobboard/internal/config"
	"github.com/justsurfingit/jobboard/internal/form"
	"github.com/justsurfingit/jobboard/internal/sessionstore"
	"github.com/justsurfingit/jobboard/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerFactoryScopesSessions(t *testing.T) {
	ctx := context.Background()
	gate, err := validation.NewDefaultGate()
	require.NoError(t, err)
	backend := sessionstore.NewMemoryBackend()
	factory := newControllerFactory(config.Config{SnapshotTTL: time.Hour}, zerolog.Nop(), gate, backend, nil)

	first := factory("tab-1")
	require.NoError(t, first.FieldChange(ctx, form.FieldRole, form.RoleCandidate))
	require.NoError(t, first.Next(ctx))

	restored := factory("tab-1")
	assert.True(t, restored.Mount(ctx))
	assert.Equal(t, 2, restored.State().CurrentStep)

	other := factory("tab-2")
	assert.False(t, other.Mount(ctx))
	assert.Equal(t, 1, other.State().CurrentStep)
}

func TestControllerFactoryWithoutRegistrarCompletes(t *testing.T) {
	ctx := context.Background()
	gate, err := validation.NewDefaultGate()
	require.NoError(t, err)
	c := newControllerFactory(config.Config{SnapshotTTL: time.Hour}, zerolog.Nop(), gate, sessionstore.NewMemoryBackend(), nil)("tab")

	values := map[string]string{
		form.FieldRole:            form.RoleCandidate,
		form.FieldFirstName:       "Ada",
		form.FieldLastName:        "Lovelace",
		form.FieldEmail:           "ada@example.com",
		form.FieldPassword:        "Aa1aaaaa",
		form.FieldConfirmPassword: "Aa1aaaaa",
		form.FieldPhone:           "+44 20 7946 0958",
		form.FieldCity:            "London",
		form.FieldCountry:         "United Kingdom",
	}
	for field, value := range values {
		require.NoError(t, c.FieldChange(ctx, field, value))
	}
	for range 3 {
		require.NoError(t, c.Next(ctx))
	}
	require.NoError(t, c.Skip(ctx))
	require.NoError(t, c.Skip(ctx))
	assert.True(t, c.View().Complete)
}
