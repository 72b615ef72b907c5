package models

import "time"

// OnboardingDraft is the durable snapshot of an in-progress onboarding
// questionnaire: current step plus the serialized answers. Upserted on
// every field change so a reload never loses data; deleted on successful
// final submission.
type OnboardingDraft struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Step      int    `gorm:"not null"`
	Answers   string `gorm:"type:text"` // JSON-encoded onboarding.Answers
	UpdatedAt time.Time
	CreatedAt time.Time
}
