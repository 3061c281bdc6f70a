package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newRecordingDB opens a dry-run connection that records the SQL each
// finisher builds. Nothing reaches a real database.
func newRecordingDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	statements := &[]string{}
	record := func(tx *gorm.DB) {
		*statements = append(*statements, tx.Statement.SQL.String())
	}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("record_sql", record))
	require.NoError(t, db.Callback().Delete().After("gorm:delete").Register("record_sql", record))
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("record_sql", record))

	return db, statements
}

// onConflictUpdates extracts the assignment list of an upsert statement.
func onConflictUpdates(t *testing.T, sql string) string {
	t.Helper()
	_, updates, found := strings.Cut(sql, "DO UPDATE SET")
	require.True(t, found, "expected an upsert, got %q", sql)
	return updates
}

func TestUpsertLikeAssignsOnlyOwnColumn(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewInteractionRepository(db)

	_, err := repo.UpsertLike(1, 2, true)
	require.NoError(t, err)

	require.NotEmpty(t, *statements)
	updates := onConflictUpdates(t, (*statements)[0])
	assert.Contains(t, updates, "liked")
	assert.Contains(t, updates, "updated_at")
	assert.NotContains(t, updates, "favorite")
	assert.NotContains(t, updates, "note")
}

func TestUpsertFavoriteAssignsOnlyOwnColumn(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewInteractionRepository(db)

	_, err := repo.UpsertFavorite(1, 2, true)
	require.NoError(t, err)

	updates := onConflictUpdates(t, (*statements)[0])
	assert.Contains(t, updates, "favorite")
	assert.NotContains(t, updates, "liked")
	assert.NotContains(t, updates, "note")
}

func TestUpsertNoteAssignsOnlyOwnColumn(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewInteractionRepository(db)

	_, err := repo.UpsertNote(1, 2, "keeper")
	require.NoError(t, err)

	updates := onConflictUpdates(t, (*statements)[0])
	assert.Contains(t, updates, "note")
	assert.NotContains(t, updates, "liked")
	assert.NotContains(t, updates, "favorite")
}

// Concurrent like and favorite writes for the same pair must both land:
// each statement targets the composite key but assigns only its own
// column, so neither can blank the other's field.
func TestUpsertsKeyOnUserContentPair(t *testing.T) {
	db, statements := newRecordingDB(t)
	repo := NewInteractionRepository(db)

	_, err := repo.UpsertLike(1, 2, true)
	require.NoError(t, err)
	_, err = repo.UpsertFavorite(1, 2, true)
	require.NoError(t, err)

	var upserts []string
	for _, sql := range *statements {
		if strings.Contains(sql, "ON CONFLICT") {
			upserts = append(upserts, sql)
		}
	}
	require.Len(t, upserts, 2)
	for _, sql := range upserts {
		_, conflict, found := strings.Cut(sql, "ON CONFLICT")
		require.True(t, found)
		target, _, _ := strings.Cut(conflict, "DO UPDATE SET")
		assert.Contains(t, target, "user_id")
		assert.Contains(t, target, "content_id")
	}
}
