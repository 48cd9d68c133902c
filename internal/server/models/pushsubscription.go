package models

import "time"

// PushSubscription is a browser Web Push endpoint registered by a user.
type PushSubscription struct {
	ID        string
	UserID    string
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}
