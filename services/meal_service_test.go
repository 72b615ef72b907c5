package services

import (
	"testing"
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
)

func sampleMeal() MealLogRequest {
	return MealLogRequest{
		MealType: "lunch",
		MealDate: "2026-08-31",
		MealTime: "12:30",
		Items: []FoodItemRequest{
			{Name: "dal", Calories: 180, Protein: 12, Carbs: 28, Fat: 3, Quantity: 1, Unit: "bowl"},
			{Name: "rice", Calories: 210, Protein: 4, Carbs: 45, Fat: 1, Quantity: 150, Unit: "g"},
		},
	}
}

func TestValidateItemsRejectsNonPositiveQuantity(t *testing.T) {
	items := []FoodItemRequest{
		{Name: "dal", Quantity: 0},
	}
	if err := ValidateItems(items); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	items[0].Quantity = -2
	if err := ValidateItems(items); err == nil {
		t.Fatal("expected error for negative quantity")
	}
	items[0].Quantity = 1
	if err := ValidateItems(items); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
}

func TestLogMealRejectsBadItemsBeforeWriting(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	req := sampleMeal()
	req.Items[1].Quantity = 0
	if _, err := svc.LogMeal(1, req); err == nil {
		t.Fatal("expected error for zero quantity item")
	}

	var meals, items int64
	db.Model(&models.MealLog{}).Count(&meals)
	db.Model(&models.FoodItem{}).Count(&items)
	if meals != 0 || items != 0 {
		t.Fatalf("bad request must not write rows: meals=%d items=%d", meals, items)
	}
}

func TestLogMealPersistsParentAndItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	meal, err := svc.LogMeal(1, sampleMeal())
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if meal.ID == 0 {
		t.Fatal("meal id not assigned")
	}
	if len(meal.Items) != 2 {
		t.Fatalf("expected 2 items on returned meal, got %d", len(meal.Items))
	}
	for _, it := range meal.Items {
		if it.MealLogID != meal.ID {
			t.Fatalf("item %q not linked to meal %d", it.Name, meal.ID)
		}
	}
}

func TestLogMealRejectsMalformedDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	req := sampleMeal()
	req.MealDate = "31-08-2026"
	if _, err := svc.LogMeal(1, req); err == nil {
		t.Fatal("expected error for malformed meal_date")
	}
}

func TestTotalsForDaySumsOnlyThatUserAndDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	if _, err := svc.LogMeal(1, sampleMeal()); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	breakfast := sampleMeal()
	breakfast.MealType = "breakfast"
	breakfast.Items = []FoodItemRequest{{Name: "poha", Calories: 250, Protein: 6, Carbs: 40, Fat: 8, Quantity: 1}}
	if _, err := svc.LogMeal(1, breakfast); err != nil {
		t.Fatalf("log breakfast: %v", err)
	}

	// other user, other day: both excluded
	otherUser := sampleMeal()
	if _, err := svc.LogMeal(2, otherUser); err != nil {
		t.Fatalf("log other user: %v", err)
	}
	otherDay := sampleMeal()
	otherDay.MealDate = "2026-09-01"
	if _, err := svc.LogMeal(1, otherDay); err != nil {
		t.Fatalf("log other day: %v", err)
	}

	day := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	totals, err := svc.TotalsForDay(1, day)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Calories != 640 {
		t.Fatalf("calories = %v, want 640", totals.Calories)
	}
	if totals.Protein != 22 || totals.Carbs != 113 || totals.Fat != 12 {
		t.Fatalf("macros = %+v", totals)
	}
}

func TestListMealsByDateRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewMealService(db)

	for _, d := range []string{"2026-08-29", "2026-08-30", "2026-08-31"} {
		req := sampleMeal()
		req.MealDate = d
		if _, err := svc.LogMeal(1, req); err != nil {
			t.Fatalf("log meal %s: %v", d, err)
		}
	}

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)
	meals, err := svc.ListMealsByDateRange(1, from, to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals in range, got %d", len(meals))
	}
	if len(meals[0].Items) == 0 {
		t.Fatal("items not preloaded")
	}
}
