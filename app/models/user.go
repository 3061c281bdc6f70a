package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER       = "USER"
	ROLE_ADMIN      = "ADMIN"
	STATUS_ACTIVE   = "ACTIVE"
	STATUS_INACTIVE = "INACTIVE"
	STATUS_PENDING  = "PENDING"
)

// SubscriptionPeriod is the window granted per successful payment.
const SubscriptionPeriod = 30 * 24 * time.Hour

// PasswordResetTTL bounds how long a reset link stays usable.
const PasswordResetTTL = 2 * time.Hour

type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	Email             string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password          string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role              string         `gorm:"type:varchar(50);default:'USER'" json:"role" validate:"oneof=USER ADMIN"`
	Status            string         `gorm:"type:varchar(50);default:'ACTIVE'" json:"status" validate:"oneof=ACTIVE INACTIVE PENDING"`
	SubscriptionStart *time.Time     `gorm:"type:timestamp;default:null" json:"subscription_start"`
	SubscriptionEnd   *time.Time     `gorm:"type:timestamp;default:null" json:"subscription_end"`
	RenewalCount      int            `gorm:"not null;default:0" json:"renewal_count"`
	XP                int            `gorm:"not null;default:0" json:"xp"`
	LastLoginAt       *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	LastActiveAt      *time.Time     `gorm:"type:timestamp;default:null" json:"last_active_at"`
	ResetToken        *string        `gorm:"type:varchar(64);uniqueIndex;default:null" json:"-"`
	ResetTokenExpires *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// NewSubscriber builds a user provisioned from a payment event. The caller
// is responsible for delivering the plaintext password to the subscriber;
// it is never stored or logged.
func NewSubscriber(name, email, plainPassword string, now time.Time) (*User, error) {
	pw, err := HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	end := now.Add(SubscriptionPeriod)
	u := &User{
		Name:              name,
		Email:             email,
		Password:          pw,
		Role:              ROLE_USER,
		Status:            STATUS_ACTIVE,
		SubscriptionStart: &now,
		SubscriptionEnd:   &end,
		RenewalCount:      1,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// RenewSubscription resets the subscription window and bumps the renewal
// cycle. Only provisioning and explicit admin actions call this; the
// scheduler never mutates the window.
func (u *User) RenewSubscription(now time.Time) {
	end := now.Add(SubscriptionPeriod)
	u.SubscriptionStart = &now
	u.SubscriptionEnd = &end
	u.Status = STATUS_ACTIVE
	u.RenewalCount++
}

// HasValidSubscription reports whether the user may log in and see content.
func (u *User) HasValidSubscription(now time.Time) bool {
	if u.Status != STATUS_ACTIVE {
		return false
	}
	if u.SubscriptionEnd != nil && u.SubscriptionEnd.Before(now) {
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

// GenerateTempPassword returns a random initial password for freshly
// provisioned subscribers.
func GenerateTempPassword() (string, error) {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// BeginPasswordReset issues a fresh reset token and arms its deadline.
// Calling it again replaces any outstanding token.
func (u *User) BeginPasswordReset(now time.Time) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	expires := now.Add(PasswordResetTTL)
	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	return token, nil
}

// CanResetPassword reports whether the given token matches the outstanding
// one and has not expired.
func (u *User) CanResetPassword(token string, now time.Time) bool {
	if token == "" || u.ResetToken == nil || *u.ResetToken != token {
		return false
	}
	return u.ResetTokenExpires != nil && now.Before(*u.ResetTokenExpires)
}

// ClearPasswordReset invalidates the outstanding reset token.
func (u *User) ClearPasswordReset() {
	u.ResetToken = nil
	u.ResetTokenExpires = nil
}
