package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dripgate/dripgate/app/models"
)

func testContent(day int) *models.Content {
	return &models.Content{
		Title:      "Day content",
		DayOffset:  day,
		UnlockHour: 9,
		Media: models.MediaList{
			{Type: models.MediaTypeImage, URL: "https://cdn.example.com/d1.jpg"},
		},
	}
}

func TestUpsertByDayReplacesOnlyEditableColumns(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewContentRepository(db)

	require.NoError(t, repo.UpsertByDay(testContent(3)))

	require.NotEmpty(t, *statements)
	sql := (*statements)[0]
	_, conflict, found := strings.Cut(sql, "ON CONFLICT")
	require.True(t, found, "expected an upsert, got %q", sql)

	target, updates, found := strings.Cut(conflict, "DO UPDATE SET")
	require.True(t, found)
	assert.Contains(t, target, "day_offset")

	assert.Contains(t, updates, "title")
	assert.Contains(t, updates, "media")
	assert.Contains(t, updates, "unlock_hour")
	// Identity never changes on a slot replace.
	assert.NotContains(t, updates, "uuid")
	assert.NotContains(t, updates, "day_offset")
}

// A removed day slot must actually leave the table. Anything short of a
// real DELETE keeps the day_offset unique key occupied and a later upsert
// for the same day would land on an invisible row.
func TestDeleteIssuesHardDelete(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewContentRepository(db)

	require.NoError(t, repo.Delete(7))

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.True(t, strings.HasPrefix(sql, "DELETE FROM"), "expected a hard delete, got %q", sql)
	assert.NotContains(t, sql, "deleted_at")
}

func TestGetByUUIDFiltersOnPublicID(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewContentRepository(db)

	_, err := repo.GetByUUID("3f2c9f2e-0000-0000-0000-000000000042")
	require.NoError(t, err)

	require.NotEmpty(t, *statements)
	sql := (*statements)[0]
	assert.Contains(t, sql, "WHERE")
	assert.Contains(t, sql, "uuid")
}
