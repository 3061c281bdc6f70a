package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// SessionLifetime matches the login cookie lifetime.
const SessionLifetime = 7 * 24 * time.Hour

// Session is a server-side login session resolved from a bearer token.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// NewSession creates a session with a fresh random token for the user.
func NewSession(userID uint, now time.Time) (*Session, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return &Session{
		Token:     hex.EncodeToString(b),
		UserID:    userID,
		ExpiresAt: now.Add(SessionLifetime),
	}, nil
}
