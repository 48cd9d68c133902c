package models

import "time"

// User is a credential record. Email is always stored normalized.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
