package services

import (
	"aurora/internal/models"
	"aurora/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_CreateAndGet(t *testing.T) {
	cache := testutil.NewMockCache()
	s := NewSessionService(cache)

	session, err := s.Create("maria", models.RoleTrusted)
	require.NoError(t, err)
	assert.Len(t, session.Token, 64)
	assert.False(t, session.CreatedAt.IsZero())

	got, ok := s.Get(session.Token)
	require.True(t, ok)
	assert.Equal(t, "maria", got.Username)
	assert.Equal(t, models.RoleTrusted, got.Role)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, 1, s.Count())
}

func TestSessionService_TokensAreUnique(t *testing.T) {
	s := NewSessionService(testutil.NewMockCache())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		session, err := s.Create("admin", models.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, seen[session.Token])
		seen[session.Token] = true
	}
}

func TestSessionService_TokenNotStoredInPayload(t *testing.T) {
	cache := testutil.NewMockCache()
	s := NewSessionService(cache)

	session, err := s.Create("admin", models.RoleAdmin)
	require.NoError(t, err)

	raw, ok := cache.Get(sessionKeyPrefix + session.Token)
	require.True(t, ok)
	assert.NotContains(t, string(raw), session.Token)
}

func TestSessionService_GetUnknown(t *testing.T) {
	cache := testutil.NewMockCache()
	s := NewSessionService(cache)

	_, ok := s.Get("")
	assert.False(t, ok)
	_, ok = s.Get("deadbeef")
	assert.False(t, ok)

	cache.Set(sessionKeyPrefix+"broken", []byte("{not json"))
	_, ok = s.Get("broken")
	assert.False(t, ok)
}

func TestSessionService_Delete(t *testing.T) {
	s := NewSessionService(testutil.NewMockCache())

	session, err := s.Create("admin", models.RoleAdmin)
	require.NoError(t, err)
	s.Delete(session.Token)
	s.Delete("")

	_, ok := s.Get(session.Token)
	assert.False(t, ok)
	assert.Zero(t, s.Count())
}
