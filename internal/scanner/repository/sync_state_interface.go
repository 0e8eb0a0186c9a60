package repository

// SyncStateRepository is the per-user scan watermark store.
type SyncStateRepository interface {
	// Load returns the user's watermark, creating a zero marker on first
	// access. Creation is race-free per user.
	Load(userID string) (int64, error)
	// Advance persists newMarker only if it exceeds the stored marker.
	Advance(userID string, newMarker int64) error
}
