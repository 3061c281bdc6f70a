package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := NewSession(7, now)
	require.NoError(t, err)

	assert.Len(t, s.Token, 64)
	assert.Equal(t, uint(7), s.UserID)
	assert.Equal(t, now.Add(SessionLifetime), s.ExpiresAt)

	other, err := NewSession(7, now)
	require.NoError(t, err)
	assert.NotEqual(t, s.Token, other.Token)
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(2*time.Hour)))
}
