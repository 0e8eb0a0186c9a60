package repository

import (
	"time"

	scandomain "jobtrack-backend/internal/scanner/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// syncStateRepository implements SyncStateRepository interface
type syncStateRepository struct {
	db *gorm.DB
}

// NewSyncStateRepository creates a new instance of syncStateRepository
func NewSyncStateRepository(db *gorm.DB) SyncStateRepository {
	return &syncStateRepository{
		db: db,
	}
}

// Load returns the watermark for userID, creating a zero-marker row on first
// access. The lookup matches on user_id only; Attrs keeps the generated ID
// out of the WHERE clause so later calls find the existing row.
func (r *syncStateRepository) Load(userID string) (int64, error) {
	var state scandomain.EmailSyncState

	now := time.Now()
	result := r.db.Where("user_id = ?", userID).
		Attrs(scandomain.EmailSyncState{
			ID:        uuid.New().String(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}).
		FirstOrCreate(&state)
	if result.Error != nil {
		return 0, result.Error
	}
	return state.LastProcessedInternalDate, nil
}

// Advance relies on a conditional UPDATE so the marker never moves backwards,
// even if two passes for the same user race.
func (r *syncStateRepository) Advance(userID string, newMarker int64) error {
	return r.db.Model(&scandomain.EmailSyncState{}).
		Where("user_id = ? AND last_processed_internal_date < ?", userID, newMarker).
		Updates(map[string]interface{}{
			"last_processed_internal_date": newMarker,
			"updated_at":                   time.Now(),
		}).Error
}
