package models

import "time"

// ResetToken is a pending password reset. Only the SHA-256 of the token
// handed to the user is stored.
type ResetToken struct {
	TokenHash string
	UserID    string
	Expires   time.Time
}
