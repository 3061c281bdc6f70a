package models

import (
	"time"
)

// Interaction holds the per-(user, content) like/favorite/note state.
// The composite unique index is what makes the field-scoped upserts in
// the repository safe under concurrency.
type Interaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_interactions_user_content,priority:1" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ContentID uint      `gorm:"not null;uniqueIndex:ux_interactions_user_content,priority:2" json:"content_id"`
	Content   Content   `gorm:"foreignKey:ContentID;constraint:OnDelete:CASCADE" json:"-"`
	Liked     bool      `gorm:"not null;default:false" json:"liked"`
	Favorite  bool      `gorm:"not null;default:false" json:"favorite"`
	Note      *string   `gorm:"type:text" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasNote reports whether a non-empty note is attached.
func (i *Interaction) HasNote() bool {
	return i.Note != nil && *i.Note != ""
}
