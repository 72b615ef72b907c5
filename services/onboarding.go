package services

import (
	"math"
)

// Onboarding steps. The questionnaire is collected across three sequential
// sections; Submitting/Complete exist only as transient states of the
// submission handler, they are never persisted in a draft.
const (
	StepBasics    = 0 // name, age, gender, height, weight
	StepLifestyle = 1 // activity level, profession, per-day work hours
	StepHealth    = 2 // dietary/allergy/medical lists, optional targets
)

const lastStep = StepHealth

var workDays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var activityLevels = map[string]bool{
	"sedentary":   true,
	"light":       true,
	"moderate":    true,
	"active":      true,
	"very_active": true,
}

// OnboardingAnswers holds every questionnaire field. WorkHours only
// contains entries for days the user actually filled in.
type OnboardingAnswers struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`

	ActivityLevel string             `json:"activity_level"`
	Profession    string             `json:"profession"`
	WorkHours     map[string]float64 `json:"work_hours"` // keyed mon..sun

	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	MedicalConditions  []string `json:"medical_conditions"`

	TargetWeightKg float64 `json:"target_weight_kg"`
	TargetCalories float64 `json:"target_calories"`
}

// OnboardingState is the serializable snapshot of the questionnaire:
// current step plus field values. Persisting a draft means persisting
// exactly this value.
type OnboardingState struct {
	Step    int               `json:"step"`
	Answers OnboardingAnswers `json:"answers"`
}

func NewOnboardingState() OnboardingState {
	return OnboardingState{Step: StepBasics}
}

// ValidateStep checks only the fields belonging to the given step and
// reports failures per field. An empty map means the step passes.
func ValidateStep(step int, a OnboardingAnswers) map[string]string {
	errs := map[string]string{}
	switch step {
	case StepBasics:
		if a.Name == "" {
			errs["name"] = "name is required"
		}
		if a.Age < 13 || a.Age > 120 {
			errs["age"] = "age must be between 13 and 120"
		}
		if a.Gender == "" {
			errs["gender"] = "gender is required"
		}
		if a.HeightCm < 50 || a.HeightCm > 250 {
			errs["height_cm"] = "height must be between 50 and 250 cm"
		}
		if a.WeightKg < 10 || a.WeightKg > 400 {
			errs["weight_kg"] = "weight must be between 10 and 400 kg"
		}
	case StepLifestyle:
		if !activityLevels[a.ActivityLevel] {
			errs["activity_level"] = "activity level must be one of sedentary, light, moderate, active, very_active"
		}
		for _, day := range workDays {
			if h, ok := a.WorkHours[day]; ok && (h < 0 || h > 24) {
				errs["work_hours."+day] = "hours must be between 0 and 24"
			}
		}
	case StepHealth:
		if a.TargetWeightKg != 0 && (a.TargetWeightKg < 10 || a.TargetWeightKg > 400) {
			errs["target_weight_kg"] = "target weight must be between 10 and 400 kg"
		}
		if a.TargetCalories < 0 {
			errs["target_calories"] = "target calories cannot be negative"
		}
	}
	return errs
}

// Next validates only the current step; it advances iff every field in
// that step passes, otherwise the state is returned unchanged along with
// the per-field errors.
func (s OnboardingState) Next() (OnboardingState, map[string]string) {
	if errs := ValidateStep(s.Step, s.Answers); len(errs) > 0 {
		return s, errs
	}
	if s.Step < lastStep {
		s.Step++
	}
	return s, nil
}

// Prev is unconditional.
func (s OnboardingState) Prev() OnboardingState {
	if s.Step > StepBasics {
		s.Step--
	}
	return s
}

// ValidateAll runs every step's validation, merging per-field errors.
// Used by the final submission so a stale draft cannot slip past the
// per-step gates.
func ValidateAll(a OnboardingAnswers) map[string]string {
	errs := map[string]string{}
	for step := StepBasics; step <= lastStep; step++ {
		for k, v := range ValidateStep(step, a) {
			errs[k] = v
		}
	}
	return errs
}

// AverageWorkHours is the mean of the per-day entries the user set,
// rounded to the nearest whole hour. Unset days are ignored; with no set
// days the average is 0.
func AverageWorkHours(hours map[string]float64) float64 {
	var sum float64
	var n int
	for _, day := range workDays {
		if h, ok := hours[day]; ok {
			sum += h
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum / float64(n))
}
