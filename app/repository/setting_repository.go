package repository

import (
	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetValue reads one configuration value; missing keys resolve to "".
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// SetValue upserts one configuration value keyed on the unique setting key.
func (r *settingRepository) SetValue(key, value string) error {
	setting := &models.Setting{Key: key, Value: value}
	if err := setting.Validate(); err != nil {
		return err
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "setting_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}
