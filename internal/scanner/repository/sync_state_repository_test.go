package repository

import (
	"testing"

	scandomain "jobtrack-backend/internal/scanner/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&scandomain.EmailSyncState{}))
	return db
}

func TestLoad_CreatesZeroMarkerOnFirstAccess(t *testing.T) {
	repo := NewSyncStateRepository(newTestDB(t))

	marker, err := repo.Load("user-1")
	require.NoError(t, err)
	assert.Zero(t, marker)
}

func TestLoad_ReusesExistingRowAcrossPasses(t *testing.T) {
	db := newTestDB(t)
	repo := NewSyncStateRepository(db)

	_, err := repo.Load("user-1")
	require.NoError(t, err)
	require.NoError(t, repo.Advance("user-1", 500))

	marker, err := repo.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), marker)

	_, err = repo.Load("user-1")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&scandomain.EmailSyncState{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated loads must not insert new rows")
}

func TestLoad_IsolatesUsers(t *testing.T) {
	repo := NewSyncStateRepository(newTestDB(t))

	_, err := repo.Load("user-1")
	require.NoError(t, err)
	require.NoError(t, repo.Advance("user-1", 900))

	marker, err := repo.Load("user-2")
	require.NoError(t, err)
	assert.Zero(t, marker)
}

func TestAdvance_NeverRegresses(t *testing.T) {
	repo := NewSyncStateRepository(newTestDB(t))

	_, err := repo.Load("user-1")
	require.NoError(t, err)
	require.NoError(t, repo.Advance("user-1", 500))
	require.NoError(t, repo.Advance("user-1", 400))

	marker, err := repo.Load("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), marker)
}
