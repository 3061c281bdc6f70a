package repository

import (
	"time"

	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment ledger repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// TotalSucceededCents sums the lifetime succeeded revenue
func (r *paymentRepository) TotalSucceededCents() (int64, error) {
	var total int64
	err := r.db.Model(&models.PaymentRecord{}).
		Where("status = ?", models.PaymentStatusSucceeded).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}

// RevenueByDay buckets succeeded payments per calendar day since the cutoff
func (r *paymentRepository) RevenueByDay(since time.Time) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := r.db.Model(&models.PaymentRecord{}).
		Where("status = ? AND created_at >= ?", models.PaymentStatusSucceeded, since).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, SUM(amount_cents) AS amount_cents").
		Group("DATE_FORMAT(created_at, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
