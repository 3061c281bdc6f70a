package repository

import (
	"time"

	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// sessionRepository implements the SessionRepository interface
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository instance
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new login session
func (r *sessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// GetByToken resolves a bearer token to its session including the user
func (r *sessionRepository) GetByToken(token string) (*models.Session, error) {
	var session models.Session
	err := r.db.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteByToken removes a single session (logout)
func (r *sessionRepository) DeleteByToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DeleteByUser removes every session of one user. Called after a password
// change so stolen or forgotten tokens stop working immediately.
func (r *sessionRepository) DeleteByUser(userID uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// DeleteExpired removes all sessions past their expiry and reports how many
func (r *sessionRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// CountExpired counts sessions ready for cleanup
func (r *sessionRepository) CountExpired(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Session{}).Where("expires_at < ?", now).Count(&count).Error
	return count, err
}

// Count returns the total number of sessions
func (r *sessionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Session{}).Count(&count).Error
	return count, err
}
