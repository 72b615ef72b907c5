package services

import (
	"testing"

	"github.com/dhaval-dalia/personal-diet-tracker/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB creates an in-memory SQLite database for testing.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.UserGoals{},
		&models.MealLog{},
		&models.FoodItem{},
		&models.ChatInteraction{},
		&models.OnboardingDraft{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func f64(v float64) *float64 { return &v }
