package repository

import (
	"github.com/dripgate/dripgate/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// interactionRepository implements the InteractionRepository interface
type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository instance
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Get retrieves the interaction record for a (user, content) pair
func (r *interactionRepository) Get(userID, contentID uint) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&interaction).Error
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

// ListByUser returns all interaction records of one user
func (r *interactionRepository) ListByUser(userID uint) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Where("user_id = ?", userID).Find(&interactions).Error
	return interactions, err
}

// ListByContent returns all interaction records for one content item
func (r *interactionRepository) ListByContent(contentID uint) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Where("content_id = ?", contentID).Find(&interactions).Error
	return interactions, err
}

// UpsertLike sets only the liked field, creating the record with defaults
// for the untouched fields when absent.
func (r *interactionRepository) UpsertLike(userID, contentID uint, liked bool) (*models.Interaction, error) {
	return r.upsertField(&models.Interaction{
		UserID:    userID,
		ContentID: contentID,
		Liked:     liked,
	}, "liked")
}

// UpsertFavorite sets only the favorite field.
func (r *interactionRepository) UpsertFavorite(userID, contentID uint, favorite bool) (*models.Interaction, error) {
	return r.upsertField(&models.Interaction{
		UserID:    userID,
		ContentID: contentID,
		Favorite:  favorite,
	}, "favorite")
}

// UpsertNote sets only the note field.
func (r *interactionRepository) UpsertNote(userID, contentID uint, note string) (*models.Interaction, error) {
	return r.upsertField(&models.Interaction{
		UserID:    userID,
		ContentID: contentID,
		Note:      &note,
	}, "note")
}

// upsertField performs the atomic merge keyed on the unique
// (user_id, content_id) index. Only the touched column is assigned on
// conflict, so concurrent upserts of different fields never lose writes.
func (r *interactionRepository) upsertField(record *models.Interaction, column string) (*models.Interaction, error) {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "content_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{column, "updated_at"}),
	}).Create(record).Error; err != nil {
		return nil, err
	}

	return r.Get(record.UserID, record.ContentID)
}
