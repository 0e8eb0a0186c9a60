package domain

import "time"

// Status is the application lifecycle stage.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusApplied   Status = "APPLIED"
	StatusInterview Status = "INTERVIEW"
	StatusOffer     Status = "OFFER"
	StatusRejected  Status = "REJECTED"
)

// Valid reports whether s is one of the known lifecycle stages.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Application is a tracked job application. The email scanner's only write
// surface into it is creating a record or mutating Status and Notes; Notes
// doubles as the idempotency ledger for processed Gmail message IDs.
type Application struct {
	ID       string `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"index:idx_app_user;not null"`
	Company  string `json:"company" gorm:"index:idx_app_user"`
	Title    string `json:"title"`
	Status   Status `json:"status"`
	Location string `json:"location"`
	JobType  string `json:"job_type"`
	Salary   string `json:"salary"`
	JobLink  string `json:"job_link"`
	Notes    string `json:"notes" gorm:"type:text"`

	DeadlineAt  *time.Time `json:"deadline_at"`
	InterviewAt *time.Time `json:"interview_at"`
	AppliedAt   *time.Time `json:"applied_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
