package repository

import (
	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// contentRepository implements the ContentRepository interface
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository instance
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// UpsertByDay creates the content item for its day slot or replaces the
// editable fields (title, media, unlock hour) when the slot exists.
func (r *contentRepository) UpsertByDay(content *models.Content) error {
	if err := content.Validate(); err != nil {
		return err
	}

	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "day_offset"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"title",
			"media",
			"unlock_hour",
			"updated_at",
		}),
	}).Create(content).Error; err != nil {
		return err
	}

	// Ensure ID and UUID reflect the stored row after upsert.
	return r.db.Where("day_offset = ?", content.DayOffset).First(content).Error
}

// GetByID retrieves a content item by its ID
func (r *contentRepository) GetByID(id uint) (*models.Content, error) {
	var content models.Content
	err := r.db.First(&content, id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GetByUUID resolves the public identifier clients see in their feed.
func (r *contentRepository) GetByUUID(uuid string) (*models.Content, error) {
	var content models.Content
	err := r.db.Where("uuid = ?", uuid).First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// GetAllOrdered returns the catalog ordered by day offset ascending with
// insertion order as the stable tie-break.
func (r *contentRepository) GetAllOrdered() ([]models.Content, error) {
	var content []models.Content
	err := r.db.Order("day_offset ASC, id ASC").Find(&content).Error
	return content, err
}

// Delete removes a content item for good. The row must actually leave the
// table: the day_offset unique key has to be free for a later re-insert,
// and the interaction foreign keys cascade only on a real delete.
func (r *contentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Content{ID: id}).Error
}

// Count returns the catalog size
func (r *contentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Content{}).Count(&count).Error
	return count, err
}
