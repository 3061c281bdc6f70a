package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriber(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	u, err := NewSubscriber("Jane Doe", "jane@example.com", "temp-password", now)
	require.NoError(t, err)

	assert.Equal(t, ROLE_USER, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.Equal(t, 1, u.RenewalCount)
	require.NotNil(t, u.SubscriptionStart)
	require.NotNil(t, u.SubscriptionEnd)
	assert.Equal(t, now, *u.SubscriptionStart)
	assert.Equal(t, now.Add(SubscriptionPeriod), *u.SubscriptionEnd)

	// Stored password is a hash, never the plaintext.
	assert.NotEqual(t, "temp-password", u.Password)
	assert.True(t, u.CheckPassword("temp-password"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestNewSubscriberRejectsInvalidEmail(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewSubscriber("Jane", "not-an-email", "temp-password", now)
	require.Error(t, err)
}

func TestRenewSubscription(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u, err := NewSubscriber("Jane Doe", "jane@example.com", "temp-password", start)
	require.NoError(t, err)
	u.Status = STATUS_INACTIVE

	renewedAt := start.Add(45 * 24 * time.Hour)
	u.RenewSubscription(renewedAt)

	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.Equal(t, 2, u.RenewalCount)
	assert.Equal(t, renewedAt, *u.SubscriptionStart)
	assert.Equal(t, renewedAt.Add(SubscriptionPeriod), *u.SubscriptionEnd)
}

func TestHasValidSubscription(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	u, err := NewSubscriber("Jane Doe", "jane@example.com", "temp-password", start)
	require.NoError(t, err)

	assert.True(t, u.HasValidSubscription(start.Add(24*time.Hour)))
	assert.False(t, u.HasValidSubscription(start.Add(31*24*time.Hour)))

	u.Status = STATUS_INACTIVE
	assert.False(t, u.HasValidSubscription(start.Add(24*time.Hour)))
}

func TestHasValidSubscriptionWithoutWindow(t *testing.T) {
	u := &User{Status: STATUS_ACTIVE}
	assert.True(t, u.HasValidSubscription(time.Now()))
}

func TestGenerateTempPassword(t *testing.T) {
	first, err := GenerateTempPassword()
	require.NoError(t, err)
	second, err := GenerateTempPassword()
	require.NoError(t, err)

	assert.Len(t, first, 18)
	assert.NotEqual(t, first, second)
}

func TestPasswordResetLifecycle(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &User{ID: 1, Email: "jane@example.com"}

	token, err := u.BeginPasswordReset(now)
	require.NoError(t, err)
	assert.Len(t, token, 64)
	require.NotNil(t, u.ResetToken)
	assert.Equal(t, token, *u.ResetToken)

	assert.True(t, u.CanResetPassword(token, now.Add(time.Hour)))
	assert.False(t, u.CanResetPassword(token, now.Add(PasswordResetTTL)))
	assert.False(t, u.CanResetPassword("other-token", now))
	assert.False(t, u.CanResetPassword("", now))

	u.ClearPasswordReset()
	assert.Nil(t, u.ResetToken)
	assert.Nil(t, u.ResetTokenExpires)
	assert.False(t, u.CanResetPassword(token, now))
}

func TestBeginPasswordResetReplacesToken(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &User{ID: 1}

	first, err := u.BeginPasswordReset(now)
	require.NoError(t, err)
	second, err := u.BeginPasswordReset(now.Add(time.Minute))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.False(t, u.CanResetPassword(first, now.Add(2*time.Minute)))
	assert.True(t, u.CanResetPassword(second, now.Add(2*time.Minute)))
}
