package domain

import "time"

// Reminder kinds. DEADLINE and INTERVIEW reminders are auto-generated from
// application fields; FOLLOWUP reminders are user-created.
const (
	KindDeadline  = "DEADLINE"
	KindInterview = "INTERVIEW"
	KindFollowup  = "FOLLOWUP"
)

type Reminder struct {
	ID            string `json:"id" gorm:"primaryKey"`
	UserID        string `json:"user_id" gorm:"index;not null"`
	ApplicationID string `json:"application_id" gorm:"index"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Notes         string `json:"notes" gorm:"type:text"`
	Color         string `json:"color"`

	TriggerAt time.Time  `json:"trigger_at"`
	EndAt     *time.Time `json:"end_at"`

	// Set once the reminder has been mirrored to Google Calendar.
	GoogleCalendarEventID string `json:"google_calendar_event_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
