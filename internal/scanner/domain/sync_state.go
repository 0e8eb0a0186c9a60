package domain

import "time"

// EmailSyncState is the per-user scan watermark: the highest Gmail
// internalDate already processed. Monotonically non-decreasing.
type EmailSyncState struct {
	ID                        string    `json:"id" gorm:"primaryKey"`
	UserID                    string    `json:"user_id" gorm:"uniqueIndex;not null"`
	LastProcessedInternalDate int64     `json:"last_processed_internal_date"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}
