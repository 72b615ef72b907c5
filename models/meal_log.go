package models

import (
	"time"

	"gorm.io/gorm"
)

// One MealLog (breakfast/lunch/…) with its food items as child rows.
// Items are persisted as a second insert after the parent row.
type MealLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null"`
	MealType string    `gorm:"size:20"` // "breakfast" | "lunch" | "dinner" | "snack"
	MealDate time.Time `gorm:"index;not null"` // truncated to YYYY-MM-DD
	MealTime string    `gorm:"size:8"`         // "HH:MM"
	Notes    string    `gorm:"type:text"`
	Items    []FoodItem `gorm:"foreignKey:MealLogID"`
}

type FoodItem struct {
	gorm.Model
	MealLogID uint `gorm:"index;not null"`

	Name     string  `gorm:"not null"`
	Calories float64 // kcal
	Protein  float64 // g
	Carbs    float64 // g
	Fat      float64 // g
	Quantity float64 // must be > 0
	Unit     string  `gorm:"size:16"` // "g" | "ml" | "piece" | ...
	Barcode  string  `gorm:"size:32"` // optional
}
