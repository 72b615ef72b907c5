package services

import (
	"fmt"
	"time"

	"github.com/dhaval-dalia/personal-diet-tracker/models"
	"github.com/dhaval-dalia/personal-diet-tracker/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

type FoodItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit"`
	Barcode  string  `json:"barcode"`
}

type MealLogRequest struct {
	MealType string            `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	MealDate string            `json:"meal_date" binding:"required"` // YYYY-MM-DD
	MealTime string            `json:"meal_time"`                   // HH:MM
	Notes    string            `json:"notes"`
	Items    []FoodItemRequest `json:"items" binding:"required,min=1"`
}

// ValidateItems rejects bad food items before anything touches the
// database or the network.
func ValidateItems(items []FoodItemRequest) error {
	for i, it := range items {
		if it.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("item %d (%s): quantity must be greater than 0", i, it.Name)
		}
	}
	return nil
}

// LogMeal creates the parent meal row, then its food items as a second
// insert. Any item failure aborts and the parent row is removed so a
// partial meal is never reported as success.
func (s *MealService) LogMeal(userID uint, req MealLogRequest) (*models.MealLog, error) {
	if err := ValidateItems(req.Items); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.MealDate)
	if err != nil {
		return nil, fmt.Errorf("invalid meal_date %q (expected YYYY-MM-DD)", req.MealDate)
	}

	meal := &models.MealLog{
		UserID:   userID,
		MealType: req.MealType,
		MealDate: date,
		MealTime: req.MealTime,
		Notes:    req.Notes,
	}
	if err := s.db.Create(meal).Error; err != nil {
		utils.Log.WithError(err).WithField("user_id", userID).Error("meal insert failed")
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	for _, it := range req.Items {
		fi := &models.FoodItem{
			MealLogID: meal.ID,
			Name:      it.Name,
			Calories:  it.Calories,
			Protein:   it.Protein,
			Carbs:     it.Carbs,
			Fat:       it.Fat,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Barcode:   it.Barcode,
		}
		if err := s.db.Create(fi).Error; err != nil {
			utils.Log.WithError(err).WithField("meal_id", meal.ID).Error("food item insert failed")
			s.db.Where("meal_log_id = ?", meal.ID).Delete(&models.FoodItem{})
			s.db.Delete(&models.MealLog{}, meal.ID)
			return nil, fmt.Errorf("failed to save food items: %w", err)
		}
	}

	// reload with items
	var populated models.MealLog
	if err := s.db.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}

	EmitChange(userID, "meal_logs", ChangeInsert, populated)
	return &populated, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("meal_date DESC, meal_time DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := s.db.
		Preload("Items").
		Where("user_id = ? AND meal_date >= ? AND meal_date < ?", userID, from, to).
		Order("meal_date DESC, meal_time DESC").
		Find(&meals).Error
	return meals, err
}

// DayTotals sums the food items of every meal logged on the given day.
type DayTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (s *MealService) TotalsForDay(userID uint, day time.Time) (DayTotals, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	meals, err := s.ListMealsByDateRange(userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return DayTotals{}, err
	}

	var t DayTotals
	for _, m := range meals {
		for _, it := range m.Items {
			t.Calories += it.Calories
			t.Protein += it.Protein
			t.Carbs += it.Carbs
			t.Fat += it.Fat
		}
	}
	return t, nil
}
