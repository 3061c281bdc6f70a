package unlock

import (
	"fmt"
	"time"

	"github.com/dripgate/dripgate/app/models"
)

// CatalogSource yields the content catalog ordered by day offset ascending
// with insertion order as the stable tie-break.
type CatalogSource interface {
	GetAllOrdered() ([]models.Content, error)
}

// InteractionSource yields a user's interaction records.
type InteractionSource interface {
	ListByUser(userID uint) ([]models.Interaction, error)
}

// SubscriberSource resolves the user whose clock drives the feed.
type SubscriberSource interface {
	GetByID(id uint) (*models.User, error)
}

// Delivery is the merged, unlock-annotated view of one catalog item for
// one user. It is computed, never persisted.
type Delivery struct {
	ID                 string           `json:"id"`
	Order              int              `json:"order"`
	Title              string           `json:"title"`
	Media              models.MediaList `json:"media"`
	UnlockAfterMinutes int              `json:"unlock_after_minutes"`
	IsLocked           bool             `json:"is_locked"`
	Liked              bool             `json:"liked"`
	IsFavorite         bool             `json:"is_favorite"`
	Note               string           `json:"note"`
}

// Scheduler produces per-user delivery feeds. It only reads; repeated
// calls with unchanged inputs return identical output.
type Scheduler struct {
	catalog      CatalogSource
	interactions InteractionSource
	subscribers  SubscriberSource
	now          func() time.Time
}

// NewScheduler wires the scheduler from its read-only sources.
func NewScheduler(catalog CatalogSource, interactions InteractionSource, subscribers SubscriberSource) *Scheduler {
	return &Scheduler{
		catalog:      catalog,
		interactions: interactions,
		subscribers:  subscribers,
		now:          time.Now,
	}
}

// WithNow overrides the clock source. Tests use this for determinism.
func (s *Scheduler) WithNow(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// FeedFor assembles the ordered delivery list for one user. Every user has
// an independent clock: the same catalog yields different unlock schedules
// for users with different subscription starts.
func (s *Scheduler) FeedFor(userID uint) ([]Delivery, error) {
	user, err := s.subscribers.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("load subscriber %d: %w", userID, err)
	}
	if user.SubscriptionStart == nil {
		return nil, ErrNoSubscription
	}
	start := user.SubscriptionStart.UTC()

	catalog, err := s.catalog.GetAllOrdered()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, item := range catalog {
		if err := ValidateCatalogEntry(item.DayOffset, item.UnlockHour); err != nil {
			return nil, err
		}
	}

	interactions, err := s.interactions.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load interactions for user %d: %w", userID, err)
	}
	byContent := make(map[uint]models.Interaction, len(interactions))
	for _, in := range interactions {
		byContent[in.ContentID] = in
	}

	now := s.now().UTC()
	feed := make([]Delivery, 0, len(catalog))
	for _, item := range catalog {
		state := Evaluate(start, item.DayOffset, item.UnlockHour, now)

		d := Delivery{
			ID:                 item.UUID,
			Order:              item.DayOffset,
			Title:              item.Title,
			Media:              item.Media,
			UnlockAfterMinutes: state.MinutesUntilUnlock,
			IsLocked:           state.Locked,
		}
		if in, ok := byContent[item.ID]; ok {
			d.Liked = in.Liked
			d.IsFavorite = in.Favorite
			if in.Note != nil {
				d.Note = *in.Note
			}
		}
		feed = append(feed, d)
	}

	return feed, nil
}
