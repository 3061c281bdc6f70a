package commerce

import (
	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// Repository provides the DB operations used by the provisioning engine.
// Transaction yields a repository bound to the transaction so the whole
// create-or-renew-plus-append sequence commits or rolls back as one.
type Repository interface {
	Transaction(fn func(Repository) error) error
	FindUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	FindPaymentByExternalID(externalID string) (*models.PaymentRecord, error)
	CreatePayment(record *models.PaymentRecord) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a provisioning repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *gormRepository) SaveUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *gormRepository) FindPaymentByExternalID(externalID string) (*models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := r.db.Where("external_id = ?", externalID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *gormRepository) CreatePayment(record *models.PaymentRecord) error {
	return r.db.Create(record).Error
}
