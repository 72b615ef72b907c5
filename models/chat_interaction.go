package models

import "time"

// ChatInteraction is an append-only log of widget conversation turns.
// Never updated or deleted by the application.
type ChatInteraction struct {
	ID        uint   `gorm:"primaryKey"`
	MessageID string `gorm:"type:varchar(64);uniqueIndex"` // uuid
	UserID    uint   `gorm:"index;not null"`
	Message   string `gorm:"type:text;not null"`
	IsBot     bool
	Metadata  string `gorm:"type:text"` // raw JSON from the workflow engine
	CreatedAt time.Time
}
