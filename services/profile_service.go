package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileInput struct {
	Name          string  `json:"name" binding:"required"`
	Age           int     `json:"age" binding:"required,gte=13,lte=120"`
	Gender        string  `json:"gender" binding:"required"`
	HeightCm      float64 `json:"height_cm" binding:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	ActivityLevel string  `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active"`

	DietaryPreferences []string `json:"dietary_preferences"`
	Allergies          []string `json:"allergies"`
	MedicalConditions  []string `json:"medical_conditions"`

	Profession string             `json:"profession"`
	WorkHours  map[string]float64 `json:"work_hours"`

	ProfilePicture string `json:"profile_picture"` // optional base64 data URL
}

// Get returns the profile row shaped for the client, with the derived
// BMI fields attached.
func (s *ProfileService) Get(userID uint) (map[string]interface{}, error) {
	var p models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("profile not found")
		}
		return nil, err
	}

	out := map[string]interface{}{
		"user_id":             p.UserID,
		"name":                p.Name,
		"age":                 p.Age,
		"gender":              p.Gender,
		"height_cm":           p.HeightCm,
		"weight_kg":           p.WeightKg,
		"activity_level":      p.ActivityLevel,
		"dietary_preferences": splitList(p.DietaryPreferences),
		"allergies":           splitList(p.Allergies),
		"medical_conditions":  splitList(p.MedicalConditions),
		"profession":          p.Profession,
		"profile_picture":     p.ProfilePicture,
		"avg_work_hours":      p.AvgWorkHours,
		"updated_at":          p.UpdatedAt,
	}

	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		out["bmi"] = bmi
		out["bmi_category"] = utils.BMICategory(bmi)
	}
	return out, nil
}

// Upsert writes the single profile row for the user: insert on first
// submission, update in place afterwards (last write wins on conflict of
// user_id).
func (s *ProfileService) Upsert(userID uint, in ProfileInput) (*models.UserProfile, error) {
	row := models.UserProfile{
		UserID:             userID,
		Name:               in.Name,
		Age:                in.Age,
		Gender:             in.Gender,
		HeightCm:           in.HeightCm,
		WeightKg:           in.WeightKg,
		ActivityLevel:      in.ActivityLevel,
		DietaryPreferences: strings.Join(in.DietaryPreferences, ","),
		Allergies:          strings.Join(in.Allergies, ","),
		MedicalConditions:  strings.Join(in.MedicalConditions, ","),
		Profession:         in.Profession,
		ProfilePicture:     in.ProfilePicture,
		AvgWorkHours:       AverageWorkHours(in.WorkHours),
	}
	applyWorkHours(&row, in.WorkHours)

	cols := []string{
		"name", "age", "gender", "height_cm", "weight_kg", "activity_level",
		"dietary_preferences", "allergies", "medical_conditions", "profession",
		"work_hours_mon", "work_hours_tue", "work_hours_wed", "work_hours_thu",
		"work_hours_fri", "work_hours_sat", "work_hours_sun",
		"avg_work_hours", "updated_at",
	}
	if in.ProfilePicture != "" {
		// don't wipe an existing avatar when the form omits it
		cols = append(cols, "profile_picture")
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(&row).Error
	if err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("profile upsert failed")
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	// reload so the caller sees the authoritative row, not the insert value
	var saved models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&saved).Error; err != nil {
		return nil, err
	}

	EmitChange(userID, "user_profiles", ChangeUpdate, saved)
	return &saved, nil
}

func applyWorkHours(p *models.UserProfile, hours map[string]float64) {
	set := func(day string) *float64 {
		if h, ok := hours[day]; ok {
			v := h
			return &v
		}
		return nil
	}
	p.WorkHoursMon = set("mon")
	p.WorkHoursTue = set("tue")
	p.WorkHoursWed = set("wed")
	p.WorkHoursThu = set("thu")
	p.WorkHoursFri = set("fri")
	p.WorkHoursSat = set("sat")
	p.WorkHoursSun = set("sun")
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
