package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeText  = "text"
)

// MediaItem is one entry of a content item's ordered media carousel.
type MediaItem struct {
	Type string `json:"type" validate:"oneof=image video text"`
	URL  string `json:"url" validate:"required,max=2048"`
}

// MediaList is stored as a JSON column and round-trips through a single
// serialization point instead of ad hoc parse/stringify at call sites.
type MediaList []MediaItem

func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		m = MediaList{}
	}
	return json.Marshal(m)
}

func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = MediaList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("media list: unsupported column type %T", value)
	}
	if len(raw) == 0 {
		*m = MediaList{}
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Content is one item of the drip catalog. DayOffset is 1-indexed: the
// first day's content unlocks UnlockHour hours after subscription start.
type Content struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UUID       string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	Title      string    `gorm:"type:varchar(255)" json:"title" validate:"max=255"`
	DayOffset  int       `gorm:"not null;uniqueIndex" json:"day_offset" validate:"required,min=1"`
	UnlockHour int       `gorm:"not null;default:0" json:"unlock_hour" validate:"min=0,max=23"`
	Media      MediaList `gorm:"type:json" json:"media"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Content) Validate() error {
	v := validator.New()

	if err := v.Struct(c); err != nil {
		return err
	}
	for i := range c.Media {
		if err := v.Struct(&c.Media[i]); err != nil {
			return fmt.Errorf("media[%d]: %w", i, err)
		}
	}
	return nil
}

// BeforeCreate assigns the public identifier.
func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.New().String()
	}
	if c.Title == "" {
		c.Title = fmt.Sprintf("Day %d", c.DayOffset)
	}
	if c.DayOffset < 1 {
		return errors.New("day_offset must be >= 1")
	}
	return nil
}
