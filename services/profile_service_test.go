package services

import (
	"testing"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
)

func sampleProfileInput() ProfileInput {
	return ProfileInput{
		Name:          "Dhaval",
		Age:           29,
		Gender:        "male",
		HeightCm:      176,
		WeightKg:      74,
		ActivityLevel: "moderate",
		DietaryPreferences: []string{"vegetarian"},
		Allergies:          []string{"peanuts"},
		Profession:         "engineer",
		WorkHours:          map[string]float64{"mon": 8, "wed": 6},
	}
}

func TestProfileUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	if _, err := svc.Upsert(3, sampleProfileInput()); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	in := sampleProfileInput()
	in.WeightKg = 72 // second submission with updated values
	saved, err := svc.Upsert(3, in)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&models.UserProfile{}).Where("user_id = ?", 3).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one profile row, got %d", count)
	}
	if saved.WeightKg != 72 {
		t.Fatalf("expected latest weight 72, got %v", saved.WeightKg)
	}
}

func TestProfileUpsertDerivesAvgWorkHours(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	saved, err := svc.Upsert(4, sampleProfileInput())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if saved.AvgWorkHours != 7 { // round((8+6)/2)
		t.Fatalf("expected avg work hours 7, got %v", saved.AvgWorkHours)
	}
	if saved.WorkHoursMon == nil || *saved.WorkHoursMon != 8 {
		t.Fatalf("raw per-day entry not stored: %+v", saved.WorkHoursMon)
	}
	if saved.WorkHoursTue != nil {
		t.Fatal("unset day must stay nil")
	}
}

func TestProfileGetIncludesBMI(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)

	if _, err := svc.Upsert(5, sampleProfileInput()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	out, err := svc.Get(5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	bmi, ok := out["bmi"].(float64)
	if !ok || bmi < 23 || bmi > 25 { // 74kg @ 176cm ≈ 23.9
		t.Fatalf("unexpected bmi %v", out["bmi"])
	}
	if out["bmi_category"] != "Normal weight" {
		t.Fatalf("unexpected category %v", out["bmi_category"])
	}
}
