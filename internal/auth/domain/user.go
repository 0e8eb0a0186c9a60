package domain

import "time"

type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Timezone     string `json:"timezone"`

	// Google integration. Flags are persisted per user so scanning state
	// survives restarts instead of living in a process-wide registry.
	GoogleAccessToken     string `json:"-"`
	GoogleRefreshToken    string `json:"-"`
	GoogleGmailEnabled    bool   `json:"google_gmail_enabled"`
	GoogleCalendarEnabled bool   `json:"google_calendar_enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
