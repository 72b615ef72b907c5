package services

import (
	"context"
	"testing"
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
)

func TestSummaryDerivesMacroGramTargets(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	activity := NewActivityService(db)
	goals := NewGoalService(db)
	svc := NewDashboardService(db, meals, activity)

	// 2000 kcal at 30/40/30 gives 150g protein, 200g carbs, ~66.67g fat
	_, err := goals.Upsert(1, GoalsInput{
		TargetCalories: 2000,
		ProteinRatio:   f64(30),
		CarbsRatio:     f64(40),
		FatRatio:       f64(30),
		WaterGlasses:   8,
	})
	if err != nil {
		t.Fatalf("upsert goals: %v", err)
	}

	req := sampleMeal()
	req.Items = []FoodItemRequest{{Name: "bowl", Calories: 500, Protein: 75, Carbs: 50, Fat: 10, Quantity: 1}}
	if _, err := meals.LogMeal(1, req); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	sum, err := svc.Summary(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if got := sum.Metrics["protein_g"].Target; got != 150 {
		t.Fatalf("protein target = %v, want 150", got)
	}
	if got := sum.Metrics["carbs_g"].Target; got != 200 {
		t.Fatalf("carbs target = %v, want 200", got)
	}
	if got := sum.Metrics["fat_g"].Target; got != 66.67 {
		t.Fatalf("fat target = %v, want 66.67", got)
	}
	if got := sum.Metrics["protein_g"].Percent; got != 50 {
		t.Fatalf("protein percent = %v, want 50", got)
	}
	if got := sum.Metrics["calories"].Percent; got != 25 {
		t.Fatalf("calories percent = %v, want 25", got)
	}
}

func TestSummaryClampsPercentAt100(t *testing.T) {
	db := newTestDB(t)
	meals := NewMealService(db)
	svc := NewDashboardService(db, meals, NewActivityService(db))

	if _, err := NewGoalService(db).Upsert(1, GoalsInput{TargetCalories: 100}); err != nil {
		t.Fatalf("upsert goals: %v", err)
	}
	req := sampleMeal()
	req.Items = []FoodItemRequest{{Name: "feast", Calories: 350, Quantity: 1}}
	if _, err := meals.LogMeal(1, req); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sum, err := svc.Summary(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got := sum.Metrics["calories"].Percent; got != 100 {
		t.Fatalf("percent = %v, want clamp at 100", got)
	}
}

func TestSummaryZeroTargetsWithoutGoals(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db, NewMealService(db), NewActivityService(db))

	sum, err := svc.Summary(context.Background(), 1, time.Now())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	m := sum.Metrics["calories"]
	if m.Target != 0 || m.Percent != 0 {
		t.Fatalf("expected zero target and percent without goals, got %+v", m)
	}
}

func TestSummaryIncludesActivityMetrics(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db, NewMealService(db), NewActivityService(db))

	if _, err := NewGoalService(db).Upsert(1, GoalsInput{WaterGlasses: 8, SleepHours: 8}); err != nil {
		t.Fatalf("upsert goals: %v", err)
	}
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	db.Create(&models.ActivityLog{
		UserID:         1,
		Date:           dayStartLocal(day),
		WaterGlasses:   6,
		WorkoutMinutes: 30,
		SleepHours:     7,
	})

	sum, err := svc.Summary(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if got := sum.Metrics["water_glasses"].Percent; got != 75 {
		t.Fatalf("water percent = %v, want 75", got)
	}
	if got := sum.Metrics["sleep_hours"].Actual; got != 7 {
		t.Fatalf("sleep actual = %v, want 7", got)
	}
}

func TestWeeklyBuildsSevenBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db, NewMealService(db), NewActivityService(db))

	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	week, err := svc.Weekly(context.Background(), 1, monday)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(week.Days) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(week.Days))
	}
	if week.Days[0].Date != "2026-08-24" || week.Days[6].Date != "2026-08-30" {
		t.Fatalf("bucket dates wrong: %s .. %s", week.Days[0].Date, week.Days[6].Date)
	}
}

func TestStartOfWeekSnapsToMonday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 8, 31, 13, 0, 0, 0, time.UTC), "2026-08-31"}, // a Monday stays put
		{time.Date(2026, 9, 3, 8, 0, 0, 0, time.UTC), "2026-08-31"},   // Thursday
		{time.Date(2026, 9, 6, 23, 0, 0, 0, time.UTC), "2026-08-31"},  // Sunday belongs to the prior Monday
	}
	for _, c := range cases {
		if got := StartOfWeek(c.in).Format("2006-01-02"); got != c.want {
			t.Fatalf("StartOfWeek(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}
