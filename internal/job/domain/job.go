package domain

import "time"

// Job is an offer imported from the Adzuna feed.
type Job struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Salary      string    `json:"salary"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location"`
	ExternalURL string    `json:"external_url" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Recommendation is a job scored against a skill list.
type Recommendation struct {
	Job
	Score int `json:"score"`
}
