package unlock

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dripgate/dripgate/app/models"
)

type fakeCatalog struct {
	items []models.Content
	err   error
}

func (f *fakeCatalog) GetAllOrdered() ([]models.Content, error) {
	return f.items, f.err
}

type fakeInteractions struct {
	items []models.Interaction
	err   error
}

func (f *fakeInteractions) ListByUser(userID uint) ([]models.Interaction, error) {
	return f.items, f.err
}

type fakeSubscribers struct {
	users map[uint]*models.User
}

func (f *fakeSubscribers) GetByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func fixedNow(value string) func() time.Time {
	ts, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return ts }
}

func subscriberStarting(t *testing.T, id uint, start string) *fakeSubscribers {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	return &fakeSubscribers{users: map[uint]*models.User{
		id: {ID: id, SubscriptionStart: &ts},
	}}
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{items: []models.Content{
		{ID: 1, UUID: "uuid-1", Title: "Day 1", DayOffset: 1, UnlockHour: 0},
		{ID: 2, UUID: "uuid-2", Title: "Day 2", DayOffset: 2, UnlockHour: 9},
		{ID: 3, UUID: "uuid-3", Title: "Day 3", DayOffset: 3, UnlockHour: 9},
	}}
}

func TestFeedForMergesUnlockStateAndInteractions(t *testing.T) {
	note := "loved this one"
	interactions := &fakeInteractions{items: []models.Interaction{
		{UserID: 7, ContentID: 1, Liked: true, Note: &note},
		{UserID: 7, ContentID: 2, Favorite: true},
	}}

	s := NewScheduler(testCatalog(), interactions, subscriberStarting(t, 7, "2024-01-01T00:00:00Z")).
		WithNow(fixedNow("2024-01-02T08:00:00Z"))

	feed, err := s.FeedFor(7)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, "uuid-1", feed[0].ID)
	assert.False(t, feed[0].IsLocked)
	assert.True(t, feed[0].Liked)
	assert.Equal(t, note, feed[0].Note)

	assert.True(t, feed[1].IsLocked)
	assert.Equal(t, 60, feed[1].UnlockAfterMinutes)
	assert.True(t, feed[1].IsFavorite)
	assert.False(t, feed[1].Liked)

	assert.True(t, feed[2].IsLocked)
	assert.Equal(t, (24+1)*60, feed[2].UnlockAfterMinutes)
	assert.False(t, feed[2].Liked)
	assert.Empty(t, feed[2].Note)
}

func TestFeedForIsDeterministic(t *testing.T) {
	interactions := &fakeInteractions{}
	s := NewScheduler(testCatalog(), interactions, subscriberStarting(t, 7, "2024-01-01T00:00:00Z")).
		WithNow(fixedNow("2024-01-02T08:00:00Z"))

	first, err := s.FeedFor(7)
	require.NoError(t, err)
	second, err := s.FeedFor(7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFeedForPerUserClocks(t *testing.T) {
	early, err := time.Parse(time.RFC3339, "2024-01-01T00:00:00Z")
	require.NoError(t, err)
	late, err := time.Parse(time.RFC3339, "2024-01-10T00:00:00Z")
	require.NoError(t, err)

	subscribers := &fakeSubscribers{users: map[uint]*models.User{
		1: {ID: 1, SubscriptionStart: &early},
		2: {ID: 2, SubscriptionStart: &late},
	}}
	s := NewScheduler(testCatalog(), &fakeInteractions{}, subscribers).
		WithNow(fixedNow("2024-01-10T12:00:00Z"))

	earlyFeed, err := s.FeedFor(1)
	require.NoError(t, err)
	lateFeed, err := s.FeedFor(2)
	require.NoError(t, err)

	assert.False(t, earlyFeed[2].IsLocked)
	assert.True(t, lateFeed[2].IsLocked)
}

func TestFeedForWithoutSubscription(t *testing.T) {
	subscribers := &fakeSubscribers{users: map[uint]*models.User{
		3: {ID: 3},
	}}
	s := NewScheduler(testCatalog(), &fakeInteractions{}, subscribers)

	_, err := s.FeedFor(3)
	require.ErrorIs(t, err, ErrNoSubscription)
}

func TestFeedForInvalidCatalog(t *testing.T) {
	catalog := &fakeCatalog{items: []models.Content{
		{ID: 1, UUID: "uuid-1", DayOffset: 0},
	}}
	s := NewScheduler(catalog, &fakeInteractions{}, subscriberStarting(t, 7, "2024-01-01T00:00:00Z"))

	_, err := s.FeedFor(7)
	require.ErrorIs(t, err, ErrInvalidCatalogEntry)
}

func TestFeedForEmptyCatalog(t *testing.T) {
	s := NewScheduler(&fakeCatalog{}, &fakeInteractions{}, subscriberStarting(t, 7, "2024-01-01T00:00:00Z"))

	feed, err := s.FeedFor(7)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

// The id a delivery carries is the catalog item's public UUID, the same
// value the interaction endpoint resolves. Clients can feed it straight
// back without ever seeing the numeric database key.
func TestFeedForExposesPublicContentID(t *testing.T) {
	s := NewScheduler(testCatalog(), &fakeInteractions{}, subscriberStarting(t, 7, "2024-01-01T00:00:00Z")).
		WithNow(fixedNow("2024-01-02T08:00:00Z"))

	feed, err := s.FeedFor(7)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "uuid-1", feed[0].ID)
	assert.Equal(t, "uuid-2", feed[1].ID)

	raw, err := json.Marshal(feed[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"uuid-1"`)
}
