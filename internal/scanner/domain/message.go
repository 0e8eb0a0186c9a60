package domain

import "golang.org/x/oauth2"

// TokenUpdateFunc is invoked when the Gmail token source refreshes an access
// token, so the new token can be persisted for the owning user.
type TokenUpdateFunc func(token *oauth2.Token) error

// MessageRef identifies a mailbox message returned by a search.
type MessageRef struct {
	ID string
}

// MessageEnvelope is the fetched content of one mailbox message. It is never
// persisted; only its ID is recorded, as a fingerprint inside application
// notes.
type MessageEnvelope struct {
	ID           string
	InternalDate int64 // mailbox-assigned timestamp, millis
	Subject      string
	From         string
	Body         string
}
