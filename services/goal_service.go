package services

import (
	"errors"
	"fmt"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

type GoalsInput struct {
	TargetWeightKg float64 `json:"target_weight_kg" binding:"omitempty,gt=0"`
	TargetCalories float64 `json:"target_calories" binding:"omitempty,gt=0"`

	ProteinRatio *float64 `json:"protein_ratio" binding:"omitempty,gte=0,lte=100"`
	CarbsRatio   *float64 `json:"carbs_ratio" binding:"omitempty,gte=0,lte=100"`
	FatRatio     *float64 `json:"fat_ratio" binding:"omitempty,gte=0,lte=100"`

	WorkoutMinutes float64 `json:"workout_minutes" binding:"omitempty,gte=0"`
	WaterGlasses   float64 `json:"water_glasses" binding:"omitempty,gte=0"`
	SleepHours     float64 `json:"sleep_hours" binding:"omitempty,gte=0,lte=24"`
}

// ErrMacroSum is attached to the ratio fields as a single error: when all
// three ratios are provided their sum must be exactly 100.
var ErrMacroSum = errors.New("protein, carbs and fat ratios must sum to 100")

// ValidateMacroRatios accepts any subset of unset ratios; only a fully
// specified trio is checked against the sum rule.
func ValidateMacroRatios(protein, carbs, fat *float64) error {
	if protein == nil || carbs == nil || fat == nil {
		return nil
	}
	if *protein+*carbs+*fat != 100 {
		return ErrMacroSum
	}
	return nil
}

func (s *GoalService) Get(userID uint) (*models.UserGoals, error) {
	var g models.UserGoals
	if err := s.db.Where("user_id = ?", userID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// no goals yet: return the zero row so the UI can render defaults
			return &models.UserGoals{UserID: userID}, nil
		}
		return nil, err
	}
	return &g, nil
}

// Upsert keeps the singleton-per-user invariant: one goals row keyed by
// user_id, last write wins.
func (s *GoalService) Upsert(userID uint, in GoalsInput) (*models.UserGoals, error) {
	if err := ValidateMacroRatios(in.ProteinRatio, in.CarbsRatio, in.FatRatio); err != nil {
		return nil, err
	}

	row := models.UserGoals{
		UserID:         userID,
		TargetWeightKg: in.TargetWeightKg,
		TargetCalories: in.TargetCalories,
		ProteinRatio:   in.ProteinRatio,
		CarbsRatio:     in.CarbsRatio,
		FatRatio:       in.FatRatio,
		WorkoutMinutes: in.WorkoutMinutes,
		WaterGlasses:   in.WaterGlasses,
		SleepHours:     in.SleepHours,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_weight_kg", "target_calories",
			"protein_ratio", "carbs_ratio", "fat_ratio",
			"workout_minutes", "water_glasses", "sleep_hours", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("goals upsert failed")
		return nil, fmt.Errorf("failed to save goals: %w", err)
	}

	var saved models.UserGoals
	if err := s.db.Where("user_id = ?", userID).First(&saved).Error; err != nil {
		return nil, err
	}

	EmitChange(userID, "user_goals", ChangeUpdate, saved)
	return &saved, nil
}
