package models

import (
	"gorm.io/gorm"
)

// UserProfile is the denormalized row written by the onboarding flow and
// edited afterwards from the profile form. One row per user, upserted on
// conflict of user_id.
type UserProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Name          string
	Age           int
	Gender        string  `gorm:"size:16"`
	HeightCm      float64 // centimeters
	WeightKg      float64 // kilograms
	ActivityLevel string  `gorm:"size:32"` // "sedentary" | "light" | "moderate" | "active" | "very_active"

	// comma-joined lists
	DietaryPreferences string `gorm:"type:text"`
	Allergies          string `gorm:"type:text"`
	MedicalConditions  string `gorm:"type:text"`

	Profession     string
	ProfilePicture string // public URL of the uploaded avatar

	// per-day work hours; nil means the day was left unset
	WorkHoursMon *float64
	WorkHoursTue *float64
	WorkHoursWed *float64
	WorkHoursThu *float64
	WorkHoursFri *float64
	WorkHoursSat *float64
	WorkHoursSun *float64

	// derived from the set days above, 0 when none are set
	AvgWorkHours float64
}
