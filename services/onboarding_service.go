package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OnboardingService persists onboarding state snapshots as durable drafts
// and runs the final submission: validate, upsert profile, upsert goals,
// notify the workflow engine, clear the draft. On any failure nothing is
// reported as success and the draft survives so the user does not
// re-enter data.
type OnboardingService struct {
	db       *gorm.DB
	profiles *ProfileService
	goals    *GoalService
	wf       *WorkflowService
}

func NewOnboardingService(db *gorm.DB, profiles *ProfileService, goals *GoalService, wf *WorkflowService) *OnboardingService {
	return &OnboardingService{db: db, profiles: profiles, goals: goals, wf: wf}
}

// LoadDraft restores the stored snapshot, or a fresh state at the first
// step when the user has no draft.
func (s *OnboardingService) LoadDraft(userID uint) (OnboardingState, error) {
	var d models.OnboardingDraft
	if err := s.db.Where("user_id = ?", userID).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewOnboardingState(), nil
		}
		return OnboardingState{}, err
	}

	st := OnboardingState{Step: d.Step}
	if d.Answers != "" {
		if err := json.Unmarshal([]byte(d.Answers), &st.Answers); err != nil {
			// a corrupt draft should not lock the user out of onboarding
			utils.Log.WithError(err).WithField("user_id", userID).Warn("discarding unreadable onboarding draft")
			return NewOnboardingState(), nil
		}
	}
	return st, nil
}

// SaveDraft snapshots the state machine, upserting on user_id so every
// field change overwrites the previous draft.
func (s *OnboardingService) SaveDraft(userID uint, st OnboardingState) error {
	answers, err := json.Marshal(st.Answers)
	if err != nil {
		return fmt.Errorf("marshal onboarding answers: %w", err)
	}

	row := models.OnboardingDraft{
		UserID:  userID,
		Step:    st.Step,
		Answers: string(answers),
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"step", "answers", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("onboarding draft save failed")
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *OnboardingService) ClearDraft(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.OnboardingDraft{}).Error
}

// Submit runs the sequential submission pipeline. Steps execute in order
// and a later step is skipped when an earlier one fails; the draft is
// cleared only after everything succeeded.
func (s *OnboardingService) Submit(ctx context.Context, userID uint, st OnboardingState) (map[string]string, error) {
	if errs := ValidateAll(st.Answers); len(errs) > 0 {
		return errs, errors.New("onboarding answers failed validation")
	}

	a := st.Answers
	if _, err := s.profiles.Upsert(userID, ProfileInput{
		Name:               a.Name,
		Age:                a.Age,
		Gender:             a.Gender,
		HeightCm:           a.HeightCm,
		WeightKg:           a.WeightKg,
		ActivityLevel:      a.ActivityLevel,
		DietaryPreferences: a.DietaryPreferences,
		Allergies:          a.Allergies,
		MedicalConditions:  a.MedicalConditions,
		Profession:         a.Profession,
		WorkHours:          a.WorkHours,
	}); err != nil {
		return nil, err
	}

	if a.TargetWeightKg > 0 || a.TargetCalories > 0 {
		if _, err := s.goals.Upsert(userID, GoalsInput{
			TargetWeightKg: a.TargetWeightKg,
			TargetCalories: a.TargetCalories,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.wf.TriggerOnboarding(ctx, map[string]any{
		"userId":         userID,
		"name":           a.Name,
		"age":            a.Age,
		"gender":         a.Gender,
		"height_cm":      a.HeightCm,
		"weight_kg":      a.WeightKg,
		"activity_level": a.ActivityLevel,
		"avg_work_hours": AverageWorkHours(a.WorkHours),
	}); err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("onboarding workflow notify failed")
		return nil, err
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("onboarded", true).Error; err != nil {
		return nil, err
	}

	if err := s.ClearDraft(userID); err != nil {
		// the submission itself succeeded; a leftover draft is harmless
		utils.Log.WithError(err).WithField("user_id", userID).Warn("failed to clear onboarding draft")
	}
	return nil, nil
}
