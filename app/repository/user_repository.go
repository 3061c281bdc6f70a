package repository

import (
	"time"

	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByPasswordResetToken resolves an outstanding reset token to its user.
// Expiry is checked by the caller against the stored deadline.
func (r *userRepository) GetByPasswordResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user in the database
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List returns users ordered by signup date, newest first
func (r *userRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountCreatedBefore counts users whose account predates the cutoff.
// Used for the renewal cohort denominators.
func (r *userRepository) CountCreatedBefore(cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("created_at <= ?", cutoff).Count(&count).Error
	return count, err
}

// CountRetained counts the cohort members that reached the renewal threshold.
func (r *userRepository) CountRetained(cutoff time.Time, minRenewals int) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("created_at <= ? AND renewal_count >= ?", cutoff, minRenewals).
		Count(&count).Error
	return count, err
}

// AddXP atomically increments the user's cumulative XP counter.
func (r *userRepository) AddXP(userID uint, points int) error {
	if points == 0 {
		return nil
	}
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", points)).Error
}

// TouchLastActive refreshes the last-seen timestamp best-effort.
func (r *userRepository) TouchLastActive(userID uint, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_active_at", at).Error
}
