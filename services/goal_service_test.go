package services

import (
	"errors"
	"testing"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
)

func TestMacroRatiosMustSumTo100(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)

	_, err := svc.Upsert(1, GoalsInput{
		TargetCalories: 2200,
		ProteinRatio:   f64(40),
		CarbsRatio:     f64(40),
		FatRatio:       f64(30), // sum 110
	})
	if !errors.Is(err, ErrMacroSum) {
		t.Fatalf("expected ErrMacroSum, got %v", err)
	}

	var count int64
	db.Model(&models.UserGoals{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected goals must not be persisted, found %d rows", count)
	}
}

func TestMacroRatiosExactSumAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)

	saved, err := svc.Upsert(1, GoalsInput{
		TargetCalories: 2000,
		ProteinRatio:   f64(30),
		CarbsRatio:     f64(45),
		FatRatio:       f64(25),
	})
	if err != nil {
		t.Fatalf("sum of exactly 100 must be accepted: %v", err)
	}
	if *saved.ProteinRatio != 30 {
		t.Fatalf("unexpected stored ratio %v", *saved.ProteinRatio)
	}
}

func TestMacroRatiosSubsetUnsetAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)

	// only one ratio set: the sum rule does not apply
	if _, err := svc.Upsert(1, GoalsInput{ProteinRatio: f64(90)}); err != nil {
		t.Fatalf("partial ratios must be accepted: %v", err)
	}
	// no ratios at all
	if _, err := svc.Upsert(2, GoalsInput{TargetCalories: 1800}); err != nil {
		t.Fatalf("unset ratios must be accepted: %v", err)
	}
}

func TestGoalsUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)

	if _, err := svc.Upsert(7, GoalsInput{TargetCalories: 2000}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	saved, err := svc.Upsert(7, GoalsInput{TargetCalories: 1750})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&models.UserGoals{}).Where("user_id = ?", 7).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one goals row, got %d", count)
	}
	if saved.TargetCalories != 1750 {
		t.Fatalf("expected latest values to win, got %v", saved.TargetCalories)
	}
}

func TestGetReturnsZeroRowWhenMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewGoalService(db)

	g, err := svc.Get(42)
	if err != nil {
		t.Fatalf("missing goals must not be an error: %v", err)
	}
	if g.UserID != 42 || g.TargetCalories != 0 {
		t.Fatalf("expected zero row for user 42, got %+v", g)
	}
}
