package repository

import (
	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new store tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create stores a new tenant; the domain is persisted normalized
func (r *tenantRepository) Create(tenant *models.StoreTenant) error {
	tenant.Domain = models.NormalizeDomain(tenant.Domain)
	if err := tenant.Validate(); err != nil {
		return err
	}
	return r.db.Create(tenant).Error
}

// GetByID retrieves a tenant by its ID
func (r *tenantRepository) GetByID(id uint) (*models.StoreTenant, error) {
	var tenant models.StoreTenant
	err := r.db.First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByDomain retrieves a tenant by its exact normalized domain
func (r *tenantRepository) GetByDomain(domain string) (*models.StoreTenant, error) {
	var tenant models.StoreTenant
	err := r.db.Where("domain = ?", models.NormalizeDomain(domain)).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListAll returns all tenants, newest first
func (r *tenantRepository) ListAll() ([]models.StoreTenant, error) {
	var tenants []models.StoreTenant
	err := r.db.Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

// ListActive returns only tenants eligible for webhook secret resolution
func (r *tenantRepository) ListActive() ([]models.StoreTenant, error) {
	var tenants []models.StoreTenant
	err := r.db.Where("is_active = ?", true).Find(&tenants).Error
	return tenants, err
}

// Update saves tenant changes; the domain stays normalized
func (r *tenantRepository) Update(tenant *models.StoreTenant) error {
	tenant.Domain = models.NormalizeDomain(tenant.Domain)
	return r.db.Save(tenant).Error
}

// Delete removes a tenant
func (r *tenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.StoreTenant{}, id).Error
}
