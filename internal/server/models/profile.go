package models

import "time"

// Profile is created by onboarding. Its presence gates the main
// authenticated area.
type Profile struct {
	UserID      string
	DisplayName string
	Medication  string
	// DoseDay is the weekday of the weekly injection, 0 = Sunday.
	DoseDay   int
	CreatedAt time.Time
}
