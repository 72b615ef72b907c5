package services

import (
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// UpsertToday records the day's actuals for the non-food targets,
// keyed by (user_id, date @ local midnight).
func (s *ActivityService) UpsertToday(userID uint, water, workout, sleep float64) error {
	start := dayStartLocal(time.Now())

	log := models.ActivityLog{
		UserID:         userID,
		Date:           start,
		WaterGlasses:   water,
		WorkoutMinutes: workout,
		SleepHours:     sleep,
	}

	err := s.db.
		Where("user_id = ? AND date = ?", userID, start).
		Assign(log).
		FirstOrCreate(&log).Error
	if err != nil {
		return err
	}

	EmitChange(userID, "activity_logs", ChangeUpdate, log)
	return nil
}

func (s *ActivityService) ForDate(userID uint, date time.Time) (water, workout, sleep float64, err error) {
	start := dayStartLocal(date)

	var log models.ActivityLog
	err = s.db.
		Where("user_id = ? AND date = ?", userID, start).
		First(&log).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, 0, nil
		}
		return 0, 0, 0, err
	}
	return log.WaterGlasses, log.WorkoutMinutes, log.SleepHours, nil
}
