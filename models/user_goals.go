package models

import (
	"gorm.io/gorm"
)

// UserGoals holds each user's targets. One row per user, upserted on
// conflict of user_id. The macro ratios are pointers so "not provided"
// is distinguishable from 0; when all three are set they must sum to 100.
type UserGoals struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	TargetWeightKg float64
	TargetCalories float64 // kcal

	ProteinRatio *float64 // percent of calories
	CarbsRatio   *float64
	FatRatio     *float64

	WorkoutMinutes float64 // per day
	WaterGlasses   float64 // per day
	SleepHours     float64 // per night
}
