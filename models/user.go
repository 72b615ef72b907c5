package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	UserID        string `gorm:"type:varchar(64);uniqueIndex;not null"` // public id, uuid
	Email         string `gorm:"uniqueIndex;not null"`
	Password      string `gorm:"not null"`
	FirstName     string
	LastName      string
	Disabled      bool
	Onboarded     bool
	ResetToken    string
	ResetTokenExp time.Time
}
