package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// StoreTenant is one upstream commerce shop. Its secret authenticates
// inbound webhooks when the shop-domain header matches.
type StoreTenant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Domain        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"domain" validate:"required,max=255"`
	WebhookSecret string    `gorm:"type:varchar(255);not null" json:"-" validate:"required"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *StoreTenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// NormalizeDomain strips scheme and trailing slashes and lowercases, so
// "https://Shop.example.com/" and "shop.example.com" compare equal.
func NormalizeDomain(domain string) string {
	d := strings.TrimSpace(strings.ToLower(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimRight(d, "/")
}
