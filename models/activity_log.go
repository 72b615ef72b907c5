package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityLog keeps per-day actuals for the non-food goal targets.
// Upserted on (user_id, date at local midnight).
type ActivityLog struct {
	gorm.Model
	UserID         uint      `gorm:"index;not null"`
	Date           time.Time `gorm:"index;not null"` // truncate to YYYY-MM-DD
	WaterGlasses   float64
	WorkoutMinutes float64
	SleepHours     float64
}
