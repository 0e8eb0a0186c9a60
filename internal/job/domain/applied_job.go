package domain

import "time"

// AppliedJob links a user to a feed job they applied to. Applied jobs stop
// appearing in that user's listings and recommendations.
type AppliedJob struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_applied_user_job;not null"`
	JobID     string    `json:"job_id" gorm:"uniqueIndex:idx_applied_user_job;not null"`
	CreatedAt time.Time `json:"created_at"`
}
