package models

import "time"

const (
	PaymentStatusSucceeded = "SUCCEEDED"

	PaymentProviderShopify = "shopify"
)

// PaymentRecord is the append-only payment ledger. Rows are never updated
// or deleted; the unique external_id index is the idempotency barrier for
// at-least-once webhook delivery.
type PaymentRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"-"`
	AmountCents  int64     `gorm:"not null" json:"amount_cents"`
	Currency     string    `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Status       string    `gorm:"type:varchar(20);not null;default:'SUCCEEDED'" json:"status"`
	Provider     string    `gorm:"type:varchar(20);not null" json:"provider"`
	ExternalID   string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"external_id"`
	RenewalCycle int       `gorm:"not null" json:"renewal_cycle"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
