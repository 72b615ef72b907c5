package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/models"

	"gorm.io/gorm"
)

// DashboardService aggregates already-written rows for the dashboard
// views. Read-only; it never mutates state.
type DashboardService struct {
	db       *gorm.DB
	meals    *MealService
	activity *ActivityService
}

func NewDashboardService(db *gorm.DB, meals *MealService, activity *ActivityService) *DashboardService {
	return &DashboardService{db: db, meals: meals, activity: activity}
}

type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

type DailySummary struct {
	Date    string            `json:"date"`
	Metrics map[string]Metric `json:"metrics"`
}

// Summary builds the day's consumed-vs-target view. Macro gram targets
// are derived from the calorie target and the macro ratios (4 kcal/g for
// protein and carbs, 9 kcal/g for fat); a missing ratio leaves the
// target at 0 and the percent clamps to 0.
func (s *DashboardService) Summary(ctx context.Context, userID uint, date time.Time) (*DailySummary, error) {
	goals, err := s.goalSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.meals.TotalsForDay(userID, date)
	if err != nil {
		return nil, err
	}

	water, workout, sleep, err := s.activity.ForDate(userID, date)
	if err != nil {
		return nil, err
	}

	proteinTarget := macroGramTarget(goals.TargetCalories, goals.ProteinRatio, 4)
	carbsTarget := macroGramTarget(goals.TargetCalories, goals.CarbsRatio, 4)
	fatTarget := macroGramTarget(goals.TargetCalories, goals.FatRatio, 9)

	out := &DailySummary{
		Date: date.Format("2006-01-02"),
		Metrics: map[string]Metric{
			"calories":        {Actual: round2(totals.Calories), Target: round2(goals.TargetCalories), Percent: pct(totals.Calories, goals.TargetCalories)},
			"protein_g":       {Actual: round2(totals.Protein), Target: round2(proteinTarget), Percent: pct(totals.Protein, proteinTarget)},
			"carbs_g":         {Actual: round2(totals.Carbs), Target: round2(carbsTarget), Percent: pct(totals.Carbs, carbsTarget)},
			"fat_g":           {Actual: round2(totals.Fat), Target: round2(fatTarget), Percent: pct(totals.Fat, fatTarget)},
			"water_glasses":   {Actual: round2(water), Target: round2(goals.WaterGlasses), Percent: pct(water, goals.WaterGlasses)},
			"workout_minutes": {Actual: round2(workout), Target: round2(goals.WorkoutMinutes), Percent: pct(workout, goals.WorkoutMinutes)},
			"sleep_hours":     {Actual: round2(sleep), Target: round2(goals.SleepHours), Percent: pct(sleep, goals.SleepHours)},
		},
	}
	return out, nil
}

type WeeklyOverview struct {
	WeekStart string         `json:"week_start"`
	Days      []DailySummary `json:"days"`
}

// Weekly builds seven day-buckets starting at the given Monday.
func (s *DashboardService) Weekly(ctx context.Context, userID uint, weekStart time.Time) (*WeeklyOverview, error) {
	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())

	out := &WeeklyOverview{WeekStart: from.Format("2006-01-02")}
	for i := 0; i < 7; i++ {
		day, err := s.Summary(ctx, userID, from.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		out.Days = append(out.Days, *day)
	}
	return out, nil
}

func (s *DashboardService) goalSnapshot(ctx context.Context, userID uint) (*models.UserGoals, error) {
	var g models.UserGoals
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserGoals{}, nil
		}
		return nil, err
	}
	return &g, nil
}

func macroGramTarget(calories float64, ratio *float64, kcalPerGram float64) float64 {
	if ratio == nil || calories <= 0 {
		return 0
	}
	return calories * (*ratio / 100.0) / kcalPerGram
}

func pct(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := (actual / target) * 100.0
	if p > 100 {
		p = 100
	}
	return round2(p)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// StartOfWeek snaps a date back to its Monday.
func StartOfWeek(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tt.AddDate(0, 0, -(wd - 1))
}
